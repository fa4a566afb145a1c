package journey

// Skill is one competency bar of the skills chart. Level is a percentage.
type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// Callout is the "Golden Hour" teaser pointing users at the mentor chat.
type Callout struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Action string `json:"action"`
}

// Skills returns the competency profile in display order.
func Skills() []Skill {
	return []Skill{
		{Name: "Clinical Excellence", Level: 95},
		{Name: "Crisis Resolution", Level: 92},
		{Name: "Strategic Communication", Level: 98},
		{Name: "Complex Data Management", Level: 88},
		{Name: "High-Stakes Empathy", Level: 100},
	}
}

// GoldenHour returns the callout shown below the journey cards.
func GoldenHour() Callout {
	return Callout{
		Title:  `Explore the "Golden Hour"`,
		Body:   "When an organ is procured, the clock starts. Experience the high-stakes logistics of the 4 to 24-hour window that determines transplant success.",
		Action: "Ask the AI Mentor More",
	}
}
