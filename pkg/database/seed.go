package database

import (
	"log"
	"time"

	"screener_backend/internal/model"
	"screener_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedReferenceData loads the screening catalog (disorders, the CCDS
// screener and its follow-up assessments, and the CCDS submission rules)
// plus a demo provider/patient pair. It only runs against an empty catalog.
func SeedReferenceData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Disorder{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := seedDisorders(db); err != nil {
		return err
	}
	if err := seedAssessments(db); err != nil {
		return err
	}
	if err := seedUsers(db); err != nil {
		return err
	}
	if err := seedSubmissionRules(db); err != nil {
		return err
	}

	log.Println("Reference data seeded")
	return nil
}

func seedDisorders(db *gorm.DB) error {
	disorders := []model.Disorder{
		{Name: "anxiety", DisplayName: "Anxiety"},
		{Name: "cross_cutting", DisplayName: "Cross-Cutting"},
		{Name: "depression", DisplayName: "Depression"},
		{Name: "mania", DisplayName: "Mania"},
		{Name: "substance_use", DisplayName: "Substance Use"},
	}
	for i := range disorders {
		if err := db.Create(&disorders[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func disorderByName(db *gorm.DB, name string) (*model.Disorder, error) {
	var d model.Disorder
	err := db.Where("name = ?", name).First(&d).Error
	return &d, err
}

func assessmentByName(db *gorm.DB, name string) (*model.Assessment, error) {
	var a model.Assessment
	err := db.Where("name = ?", name).First(&a).Error
	return &a, err
}

type seedAnswer struct {
	title string
	value string
}

type seedQuestion struct {
	title      string
	disorderID string
}

// seedSection creates a section plus its shared answers and its questions in
// display order.
func seedSection(db *gorm.DB, assessmentID, title string, answers []seedAnswer, questions []seedQuestion) error {
	section := model.AssessmentSection{
		AssessmentID: assessmentID,
		Type:         model.SectionTypeStandard,
		Title:        title,
	}
	if err := db.Create(&section).Error; err != nil {
		return err
	}

	for i, a := range answers {
		answer := model.AssessmentAnswer{
			AssessmentSectionID: section.ID,
			Title:               a.title,
			ValueType:           model.AnswerValueNumber,
			Value:               a.value,
			DisplayOrder:        i,
		}
		if err := db.Create(&answer).Error; err != nil {
			return err
		}
	}

	for i, q := range questions {
		question := model.AssessmentQuestion{
			AssessmentSectionID: section.ID,
			DisorderID:          q.disorderID,
			Title:               q.title,
			DisplayOrder:        i,
		}
		if err := db.Create(&question).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedAssessments(db *gorm.DB) error {
	anxiety, err := disorderByName(db, "anxiety")
	if err != nil {
		return err
	}
	crossCutting, err := disorderByName(db, "cross_cutting")
	if err != nil {
		return err
	}
	depression, err := disorderByName(db, "depression")
	if err != nil {
		return err
	}
	mania, err := disorderByName(db, "mania")
	if err != nil {
		return err
	}
	substanceUse, err := disorderByName(db, "substance_use")
	if err != nil {
		return err
	}

	assessments := []model.Assessment{
		{Name: "ASSIST", FullName: "Alcohol, Smoking, and Substance Involvement Screening Test", DisplayName: "ASSIST", DisorderID: substanceUse.ID},
		{Name: "ASRM", FullName: "Altman Self-Rating Mania Scale", DisplayName: "ASRM", DisorderID: mania.ID},
		{Name: "CCDS", FullName: "Cross-Cutting Diagnostic Screener", DisplayName: "Diagnostic Screener", DisorderID: crossCutting.ID, Locked: true},
		{Name: "PHQ-9", FullName: "Patient Health Questionnaire-9", DisplayName: "Patient Health Questionnaire", DisorderID: depression.ID},
	}
	for i := range assessments {
		if err := db.Create(&assessments[i]).Error; err != nil {
			return err
		}
	}

	bpds, err := assessmentByName(db, "CCDS")
	if err != nil {
		return err
	}
	frequencyAnswers := []seedAnswer{
		{"Not at all", "0"},
		{"Rare, less than a day or two", "1"},
		{"Several days", "2"},
		{"More than half the days", "3"},
		{"Nearly every day", "4"},
	}
	err = seedSection(db, bpds.ID,
		"During the past TWO (2) WEEKS, how much (or how often) have you been bothered by the following problems?",
		frequencyAnswers,
		[]seedQuestion{
			{"Little interest or pleasure in doing things?", depression.ID},
			{"Feeling down, depressed, or hopeless?", depression.ID},
			{"Sleeping less than usual, but still have a lot of energy?", mania.ID},
			{"Starting lots more projects than usual or doing more risky things than usual?", mania.ID},
			{"Feeling nervous, anxious, frightened, worried, or on edge?", anxiety.ID},
			{"Feeling panic or being frightened?", anxiety.ID},
			{"Avoiding situations that make you feel anxious?", anxiety.ID},
			{"Drinking at least 4 drinks of any kind of alcohol in a single day?", substanceUse.ID},
		})
	if err != nil {
		return err
	}

	phq9, err := assessmentByName(db, "PHQ-9")
	if err != nil {
		return err
	}
	err = seedSection(db, phq9.ID,
		"During the past TWO (2) WEEKS, how much (or how often) have you been bothered by the following problems?",
		[]seedAnswer{
			{"Not at all", "0"},
			{"Several days", "1"},
			{"More than half the days", "2"},
			{"Nearly every day", "3"},
		},
		[]seedQuestion{
			{"Little interest or pleasure in doing things?", depression.ID},
			{"Feeling down, depressed, or hopeless?", depression.ID},
			{"Trouble falling or staying asleep, or sleeping too much?", depression.ID},
			{"Feeling tired or having little energy?", depression.ID},
			{"Poor appetite or overeating?", depression.ID},
			{"Feeling bad about yourself - or that you are a failure or have let yourself or your family down?", depression.ID},
			{"Trouble concentrating on things, such as reading the newspaper or watching television?", depression.ID},
			{"Moving or speaking so slowly that other people could have noticed? Or so fidgety or restless that you have been moving a lot more than usual?", depression.ID},
			{"Thoughts that you would be better off dead, or thoughts of hurting yourself in some way?", depression.ID},
		})
	if err != nil {
		return err
	}

	asrm, err := assessmentByName(db, "ASRM")
	if err != nil {
		return err
	}
	asrmQuestion := []seedQuestion{
		{"Choose the statement that best describes your mood for the past ONE (1) WEEK", mania.ID},
	}
	asrmSections := []struct {
		title   string
		answers []seedAnswer
	}{
		{"Happiness", []seedAnswer{
			{"I do not feel happier or more cheerful than usual", "1"},
			{"I occasionally feel happier or more cheerful than usual", "2"},
			{"I often feel happier or more cheerful than usual", "3"},
			{"I feel happier or more cheerful than usual most of the time", "4"},
			{"I feel happier or more cheerful than usual all of the time", "5"},
		}},
		{"Self-confidence", []seedAnswer{
			{"I do not feel more self-confident than usual", "1"},
			{"I occasionally feel more self-confident than usual", "2"},
			{"I often feel more self-confident than usual", "3"},
			{"I frequently feel more self-confident than usual", "4"},
			{"I feel extremely self-confident all of the time", "5"},
		}},
		{"Sleep", []seedAnswer{
			{"I do not need less sleep than usual", "1"},
			{"I occasionally need less sleep than usual", "2"},
			{"I often need less sleep than usual", "3"},
			{"I frequently need less sleep than usual", "4"},
			{"I can go all day and all night without any sleep and still not feel tired", "5"},
		}},
		{"Communication", []seedAnswer{
			{"I do not talk more than usual", "1"},
			{"I occasionally talk more than usual", "2"},
			{"I often talk more than usual", "3"},
			{"I frequently talk more than usual", "4"},
			{"I talk constantly and cannot be interrupted", "5"},
		}},
		{"Activity", []seedAnswer{
			{"I have not been more active (either socially, sexually, at work, home, or school) than usual", "1"},
			{"I have occasionally been more active than usual", "2"},
			{"I have often been more active than usual", "3"},
			{"I have frequently been more active than usual", "4"},
			{"I am constantly more active or on the go all the time", "5"},
		}},
	}
	for _, s := range asrmSections {
		if err := seedSection(db, asrm.ID, s.title, s.answers, asrmQuestion); err != nil {
			return err
		}
	}

	assist, err := assessmentByName(db, "ASSIST")
	if err != nil {
		return err
	}
	substanceQuestions := []string{
		"cannabis (marijuana, pot, grass, hash, etc.)?",
		"cocaine (coke, crack, etc.)?",
		"prescription stimulants just for the feeling, more than prescribed, or that were not prescribed for you. (Ritalin, Adderall, diet pills, etc.)?",
		"methamphetamine (meth, crystal, speed, ecstasy, molly, etc.)?",
		"inhalants (nitrous, glue, paint thinner, poppers, whippets, etc.)?",
		"sedatives just for the feeling, more than prescribed, or that were not prescribed for you. (sleeping pills, Valium, Xanax, tranquilizers, benzos, etc.)?",
		"hallucinogens (LSD, acid, mushrooms, PCP, Special K, ecstasy, etc.)?",
		"street opioids (heroin, opium, etc.)?",
		"prescription opioids just for the feeling, more than prescribed, or that were not prescribed for you. (Fentanyl, Oxycodone, OxyContin, Percocet, Vicodin, methadone, Buprenorphine, etc.)?",
		"any other drug(s) to get high?",
	}
	assistQuestions := make([]seedQuestion, len(substanceQuestions))
	for i, title := range substanceQuestions {
		assistQuestions[i] = seedQuestion{title, substanceUse.ID}
	}
	return seedSection(db, assist.ID,
		"At any point in your life, have you ever used...",
		[]seedAnswer{
			{"No", "0"},
			{"Yes", "3"},
		},
		assistQuestions)
}

func seedUsers(db *gorm.DB) error {
	providerHash, err := bcrypt.GenerateFromPassword([]byte("test123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	provider := model.User{
		Type:       model.UserTypeProvider,
		GivenName:  "Good",
		FamilyName: "Therapist",
		Email:      "good.therapist@example.com",
		Password:   string(providerHash),
	}
	if err := db.Create(&provider).Error; err != nil {
		return err
	}

	patientHash, err := bcrypt.GenerateFromPassword([]byte("test456"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	patient := model.User{
		Type:       model.UserTypePatient,
		GivenName:  "Nice",
		FamilyName: "Patient",
		Email:      "nice.patient@example.com",
		Password:   string(patientHash),
	}
	if err := db.Create(&patient).Error; err != nil {
		return err
	}

	now := time.Now()
	caseload := model.PatientProvider{
		PatientID:   patient.ID,
		ProviderID:  provider.ID,
		OnboardedAt: now,
	}
	if err := db.Create(&caseload).Error; err != nil {
		return err
	}

	bpds, err := assessmentByName(db, "CCDS")
	if err != nil {
		return err
	}
	instance := model.AssessmentInstance{
		ProviderID:   provider.ID,
		PatientID:    patient.ID,
		AssessmentID: bpds.ID,
		Slug:         util.GenerateSlug(),
		SentAt:       &now,
	}
	return db.Create(&instance).Error
}

func seedSubmissionRules(db *gorm.DB) error {
	anxiety, err := disorderByName(db, "anxiety")
	if err != nil {
		return err
	}
	depression, err := disorderByName(db, "depression")
	if err != nil {
		return err
	}
	mania, err := disorderByName(db, "mania")
	if err != nil {
		return err
	}
	substanceUse, err := disorderByName(db, "substance_use")
	if err != nil {
		return err
	}

	bpds, err := assessmentByName(db, "CCDS")
	if err != nil {
		return err
	}
	phq9, err := assessmentByName(db, "PHQ-9")
	if err != nil {
		return err
	}
	asrm, err := assessmentByName(db, "ASRM")
	if err != nil {
		return err
	}
	assist, err := assessmentByName(db, "ASSIST")
	if err != nil {
		return err
	}

	rules := []model.SubmissionRule{
		{
			AssessmentID:   bpds.ID,
			FilterType:     model.FilterQuestionDomain,
			FilterValue:    depression.ID,
			ScoreOperation: model.ScoreOpSum,
			EvalOperation:  model.EvalOpGreaterThanOrEqual,
			EvalValue:      "2",
			ActionType:     model.ActionAssignAssessment,
			ActionValue:    phq9.ID,
		},
		{
			AssessmentID:   bpds.ID,
			FilterType:     model.FilterQuestionDomain,
			FilterValue:    mania.ID,
			ScoreOperation: model.ScoreOpSum,
			EvalOperation:  model.EvalOpGreaterThanOrEqual,
			EvalValue:      "2",
			ActionType:     model.ActionAssignAssessment,
			ActionValue:    asrm.ID,
		},
		{
			AssessmentID:   bpds.ID,
			FilterType:     model.FilterQuestionDomain,
			FilterValue:    anxiety.ID,
			ScoreOperation: model.ScoreOpSum,
			EvalOperation:  model.EvalOpGreaterThanOrEqual,
			EvalValue:      "2",
			ActionType:     model.ActionAssignAssessment,
			ActionValue:    phq9.ID,
		},
		{
			AssessmentID:   bpds.ID,
			FilterType:     model.FilterQuestionDomain,
			FilterValue:    substanceUse.ID,
			ScoreOperation: model.ScoreOpSum,
			EvalOperation:  model.EvalOpGreaterThanOrEqual,
			EvalValue:      "1",
			ActionType:     model.ActionAssignAssessment,
			ActionValue:    assist.ID,
		},
	}
	for i := range rules {
		if err := db.Create(&rules[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
