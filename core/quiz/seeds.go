package quiz

const quizzesKey = "lms_quizzes"

// SeedQuizzes is the dataset a first unauthenticated run starts from.
func SeedQuizzes() []Quiz {
	return []Quiz{
		{
			ID:           "1",
			Title:        "TypeScript Basics Quiz",
			CourseID:     "1",
			CourseTitle:  "Introduction to TypeScript",
			PassingScore: 70,
			IsActive:     true,
			CreatedAt:    "2024-01-12",
			Questions: []Question{
				{
					ID:            "q1",
					Text:          "What does TypeScript add to JavaScript?",
					Options:       []string{"Static typing", "New runtime", "Faster execution", "Garbage collection"},
					CorrectAnswer: 0,
				},
				{
					ID:            "q2",
					Text:          "Which keyword declares an interface?",
					Options:       []string{"type", "interface", "struct", "shape"},
					CorrectAnswer: 1,
				},
			},
		},
		{
			ID:           "2",
			Title:        "Angular Fundamentals Quiz",
			CourseID:     "2",
			CourseTitle:  "Angular Fundamentals",
			PassingScore: 60,
			IsActive:     false,
			CreatedAt:    "2024-01-16",
			Questions: []Question{
				{
					ID:            "q1",
					Text:          "What is an Angular component decorated with?",
					Options:       []string{"@Module", "@Service", "@Component", "@Directive"},
					CorrectAnswer: 2,
				},
			},
		},
	}
}
