package quiz

type Question struct {
	Prompt  string
	Answers []string
	Correct int
}

// Bank is the fixed question set, asked in this order.
var Bank = []Question{
	{Prompt: "What is 5 + 3?", Answers: []string{"6", "7", "8", "9"}, Correct: 2},
	{Prompt: "Which color do you get when you mix blue and yellow?", Answers: []string{"Green", "Purple", "Orange", "Red"}, Correct: 0},
	{Prompt: "How many days are in a week?", Answers: []string{"5", "6", "7", "8"}, Correct: 2},
	{Prompt: "What is the opposite of hot?", Answers: []string{"Warm", "Cold", "Cool", "Freezing"}, Correct: 1},
	{Prompt: `Which animal says "meow"?`, Answers: []string{"Dog", "Cat", "Cow", "Bird"}, Correct: 1},
	{Prompt: "What comes after Monday?", Answers: []string{"Sunday", "Tuesday", "Wednesday", "Thursday"}, Correct: 1},
	{Prompt: "How many legs does a spider have?", Answers: []string{"6", "8", "10", "12"}, Correct: 1},
	{Prompt: "What shape is a ball?", Answers: []string{"Square", "Triangle", "Circle", "Rectangle"}, Correct: 2},
}
