package catalog

// Fallback storage keys.
const (
	categoriesKey = "lms_categories"
	coursesKey    = "lms_courses"
)

// SeedCategories is the dataset a first unauthenticated run starts from.
func SeedCategories() []Category {
	return []Category{
		{ID: "1", Name: "Web Development", CreatedAt: "2024-01-01"},
		{ID: "2", Name: "Mobile Development", CreatedAt: "2024-01-02"},
		{ID: "3", Name: "Data Science", CreatedAt: "2024-01-03"},
		{ID: "4", Name: "Design", CreatedAt: "2024-01-04"},
		{ID: "5", Name: "DevOps", CreatedAt: "2024-01-05"},
	}
}

func SeedCourses() []Course {
	return []Course{
		{
			ID:             "1",
			Title:          "Introduction to TypeScript",
			Description:    "Learn the fundamentals of working with TypeScript and how to create basic applications.",
			Category:       "Web Development",
			Level:          LevelBeginner,
			Language:       "English",
			Image:          "/typescript-programming-blue-background.jpg",
			Status:         StatusPublished,
			IsActive:       true,
			Instructor:     "Elijah Murray",
			Duration:       50,
			EnrolledCount:  156,
			CompletionRate: 78,
			CreatedAt:      "2024-01-10",
			Chapters: []Chapter{
				{
					ID:    "c1",
					Title: "Getting Started",
					Lessons: []Lesson{
						{ID: "l1", Title: "Introduction", VideoURL: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4", Duration: 10},
						{ID: "l2", Title: "Setup Environment", VideoURL: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ElephantsDream.mp4", Duration: 15},
					},
				},
				{
					ID:    "c2",
					Title: "TypeScript Basics",
					Lessons: []Lesson{
						{ID: "l3", Title: "Types and Interfaces", VideoURL: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerBlazes.mp4", Duration: 25},
					},
				},
			},
		},
		{
			ID:             "2",
			Title:          "Angular Fundamentals",
			Description:    "Master Angular framework and build modern web applications.",
			Category:       "Web Development",
			Level:          LevelIntermediate,
			Language:       "English",
			Image:          "/angular-logo-red-background.jpg",
			Status:         StatusPublished,
			IsActive:       true,
			Instructor:     "Elijah Murray",
			Duration:       72,
			EnrolledCount:  98,
			CompletionRate: 65,
			CreatedAt:      "2024-01-15",
			Chapters: []Chapter{
				{
					ID:    "c1",
					Title: "Angular Introduction",
					Lessons: []Lesson{
						{ID: "l1", Title: "What is Angular", VideoURL: "https://example.com/video1", Duration: 20},
					},
				},
			},
		},
	}
}
