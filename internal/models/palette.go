package models

type HabitColor struct {
	Name  string
	Value string
}

func HabitColors() []HabitColor {
	return []HabitColor{
		{Name: "red", Value: "#ff6b6b"},
		{Name: "blue", Value: "#4dabf7"},
		{Name: "teal", Value: "#38d9a9"},
		{Name: "orange", Value: "#ffa94d"},
		{Name: "pink", Value: "#f783ac"},
		{Name: "green", Value: "#51cf66"},
		{Name: "yellow", Value: "#ffd43b"},
		{Name: "purple", Value: "#b197fc"},
	}
}

func HabitIcons() []string {
	return []string{"🧘", "💊", "✏️", "☀️", "🏃", "💧", "🚶", "🍽️", "📚", "🛏️", "🏋️", "☕", "🧠", "❤️", "🍃"}
}

const (
	DefaultColorHex = "#ff6b6b"
	DefaultIcon     = "🧘"
)
