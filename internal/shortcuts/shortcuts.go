// Package shortcuts 提供看板的键盘快捷键说明，纯静态数据。
package shortcuts

// Shortcut 是一条快捷键，Keys 按顺序同时按下。
type Shortcut struct {
	Keys        []string `json:"keys"`
	Description string   `json:"description"`
}

// Group 是同一类快捷键。
type Group struct {
	Title     string     `json:"title"`
	Shortcuts []Shortcut `json:"shortcuts"`
}

var groups = []Group{
	{
		Title: "Navigation",
		Shortcuts: []Shortcut{
			{Keys: []string{"G", "D"}, Description: "Go to dashboard"},
			{Keys: []string{"G", "C"}, Description: "Go to candidates"},
			{Keys: []string{"G", "L"}, Description: "Go to clients"},
			{Keys: []string{"J"}, Description: "Next row"},
			{Keys: []string{"K"}, Description: "Previous row"},
		},
	},
	{
		Title: "Filters",
		Shortcuts: []Shortcut{
			{Keys: []string{"F"}, Description: "Open filter panel"},
			{Keys: []string{"/"}, Description: "Focus search"},
			{Keys: []string{"Mod", "Enter"}, Description: "Apply filters"},
			{Keys: []string{"Shift", "X"}, Description: "Clear all filters"},
		},
	},
	{
		Title: "Actions",
		Shortcuts: []Shortcut{
			{Keys: []string{"N"}, Description: "New client intake"},
			{Keys: []string{"Mod", "S"}, Description: "Save form"},
			{Keys: []string{"Esc"}, Description: "Close dialog"},
			{Keys: []string{"?"}, Description: "Show keyboard shortcuts"},
		},
	},
}

// Groups 返回全部快捷键分组的拷贝。
func Groups() []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		items := make([]Shortcut, len(g.Shortcuts))
		for j, s := range g.Shortcuts {
			items[j] = Shortcut{Keys: append([]string(nil), s.Keys...), Description: s.Description}
		}
		out[i] = Group{Title: g.Title, Shortcuts: items}
	}
	return out
}
