package journal

// SeedEntries returns the built-in sample entries used when nothing has been
// stored yet. Each call returns a fresh copy.
func SeedEntries() []Entry {
	return []Entry{
		{
			ID:      1,
			Date:    "2026-02-05",
			Title:   "React State Management",
			Tags:    []string{"React", "Hooks"},
			Preview: "Learned useState and useEffect patterns...",
			Content: "Today I dove deep into React state management using hooks.\n\n" +
				"• useState for local component state\n" +
				"• useEffect for side effects and lifecycle\n" +
				"• Custom hooks for reusable logic\n\n" +
				"Built a counter app and a todo list to practice.",
			Mood: "🚀",
		},
		{
			ID:      2,
			Date:    "2026-02-04",
			Title:   "CSS Grid Deep Dive",
			Tags:    []string{"CSS", "Layout"},
			Preview: "Finally understanding grid-template-areas...",
			Content: "CSS Grid is incredibly powerful. Today's focus:\n\n" +
				"• grid-template-columns/rows\n" +
				"• fr units and minmax()\n" +
				"• grid-template-areas for semantic layouts\n\n" +
				"The \"areas\" syntax is like ASCII art for layouts. Mind blown.",
			Mood: "💡",
		},
		{
			ID:      3,
			Date:    "2026-02-03",
			Title:   "Git Branching Strategy",
			Tags:    []string{"Git", "Workflow"},
			Preview: "Implemented feature branch workflow...",
			Content: "Practiced Git branching strategies today:\n\n" +
				"• Feature branches for isolation\n" +
				"• Rebasing vs merging debates\n" +
				"• Interactive rebase for clean history\n\n" +
				"Made several mistakes and had to reset --hard. Learning experience!",
			Mood: "🌿",
		},
	}
}
