package task

// Demo returns the sample tasks shown on a fresh install.
func Demo() []Task {
	return []Task{
		{ID: "1", Title: "Drink 8 glasses of water", Category: Health, Time: "06:00", Duration: "1h"},
		{ID: "2", Title: "Edit the PDF", Category: Work, Time: "10:00", Duration: "4h"},
		{
			ID:       "3",
			Title:    "Write in a gratitude journal",
			Category: MentalHealth,
			Time:     "09:00",
			Duration: "1h",
			SubTasks: []SubTask{
				{ID: "3-1", Title: "Get a notebook"},
				{ID: "3-2", Title: "Follow the youtube tutorial"},
			},
		},
		{ID: "4", Title: "Stretch everyday for 15 mins", Category: Health},
	}
}
