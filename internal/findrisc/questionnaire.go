// Package findrisc scores the Finnish Diabetes Risk Score questionnaire.
//
// Every question has a closed set of option keys, each mapped to a fixed point
// value. Answers are validated against the table before any scoring happens.
package findrisc

// Option is one selectable answer.
type Option struct {
	Key    string
	Label  string
	Points int
}

// Question is one of the eight fixed FINDRISC factors.
type Question struct {
	Key     string
	Prompt  string
	Hint    string
	Options []Option
}

const (
	QuestionAge              = "age"
	QuestionBMI              = "bmi"
	QuestionWaist            = "waist"
	QuestionExercise         = "exercise"
	QuestionVegetables       = "vegetables"
	QuestionAntihypertensive = "antihypertensive"
	QuestionHighGlucose      = "high_glucose"
	QuestionFamilyHistory    = "family_history"
)

// Questions is the questionnaire in presentation order.
var Questions = []Question{
	{
		Key:    QuestionAge,
		Prompt: "Age",
		Options: []Option{
			{"under_45", "Under 45 years", 0},
			{"45_54", "45-54 years", 2},
			{"55_64", "55-64 years", 3},
			{"over_64", "Over 64 years", 4},
		},
	},
	{
		Key:    QuestionBMI,
		Prompt: "Body-mass index",
		Hint:   "BMI = weight (kg) / height² (m)",
		Options: []Option{
			{"under_25", "Lower than 25 kg/m²", 0},
			{"25_30", "25-30 kg/m²", 1},
			{"over_30", "Higher than 30 kg/m²", 3},
		},
	},
	{
		Key:    QuestionWaist,
		Prompt: "Waist circumference",
		Options: []Option{
			{"normal", "Men <94 cm / Women <80 cm", 0},
			{"elevated", "Men 94-102 cm / Women 80-88 cm", 3},
			{"high", "Men >102 cm / Women >88 cm", 4},
		},
	},
	{
		Key:    QuestionExercise,
		Prompt: "Do you get at least 30 minutes of physical activity every day?",
		Options: []Option{
			{"yes", "Yes", 0},
			{"no", "No", 2},
		},
	},
	{
		Key:    QuestionVegetables,
		Prompt: "How often do you eat vegetables, fruit or berries?",
		Options: []Option{
			{"daily", "Every day", 0},
			{"not_daily", "Not every day", 1},
		},
	},
	{
		Key:    QuestionAntihypertensive,
		Prompt: "Have you ever taken antihypertensive medication regularly?",
		Options: []Option{
			{"no", "No", 0},
			{"yes", "Yes", 2},
		},
	},
	{
		Key:    QuestionHighGlucose,
		Prompt: "Have you ever been found to have high blood glucose?",
		Hint:   "e.g. in a health examination, during an illness or pregnancy",
		Options: []Option{
			{"no", "No", 0},
			{"yes", "Yes", 5},
		},
	},
	{
		Key:    QuestionFamilyHistory,
		Prompt: "Have any of your family members been diagnosed with diabetes?",
		Options: []Option{
			{"none", "No", 0},
			{"extended", "Yes: grandparent, aunt, uncle or first cousin", 3},
			{"immediate", "Yes: parent, brother, sister or own child", 5},
		},
	},
}

var questionIndex = func() map[string]Question {
	idx := make(map[string]Question, len(Questions))
	for _, q := range Questions {
		idx[q.Key] = q
	}
	return idx
}()

// Lookup returns the question with the given key.
func Lookup(key string) (Question, bool) {
	q, ok := questionIndex[key]
	return q, ok
}

// Option returns the option with the given key.
func (q Question) Option(key string) (Option, bool) {
	for _, o := range q.Options {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}

// MaxScore is the highest reachable total.
func MaxScore() int {
	total := 0
	for _, q := range Questions {
		best := 0
		for _, o := range q.Options {
			if o.Points > best {
				best = o.Points
			}
		}
		total += best
	}
	return total
}
