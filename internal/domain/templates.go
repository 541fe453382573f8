package domain

// CommandTemplate is a one-click shortcut shown in the UI templates panel.
type CommandTemplate struct {
	Label   string `json:"label"`
	Command string `json:"command"`
}

// TemplateGroup clusters related shortcuts under a panel heading.
type TemplateGroup struct {
	Name      string            `json:"name"`
	Templates []CommandTemplate `json:"templates"`
}

// BuiltinTemplates returns the quick-command shortcuts rendered by the UI shell.
func BuiltinTemplates() []TemplateGroup {
	return []TemplateGroup{
		{
			Name: "Files & Folders",
			Templates: []CommandTemplate{
				{Label: "List files", Command: "ls -la"},
				{Label: "Find large files", Command: `find . -type f -size +10M -exec ls -lh {} \;`},
				{Label: "Count files", Command: "find . -type f | wc -l"},
				{Label: "Recent files", Command: "find . -type f -mtime -1"},
			},
		},
		{
			Name: "System Info",
			Templates: []CommandTemplate{
				{Label: "Disk usage", Command: "df -h"},
				{Label: "Memory info", Command: "free -h"},
				{Label: "Running processes", Command: "ps aux | head -20"},
				{Label: "Network info", Command: "ip addr"},
			},
		},
		{
			Name: "Search & Filter",
			Templates: []CommandTemplate{
				{Label: "Find Python files", Command: "find . -name '*.py'"},
				{Label: "Search in files", Command: "grep -r 'TODO' ."},
				{Label: "List directories only", Command: "find . -type d -maxdepth 1"},
			},
		},
		{
			Name: "Git",
			Templates: []CommandTemplate{
				{Label: "Status", Command: "git status"},
				{Label: "Recent commits", Command: "git log --oneline -10"},
				{Label: "Current branch", Command: "git branch --show-current"},
			},
		},
	}
}
