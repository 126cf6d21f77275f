package benchmarks

// Level is a sport skill tier, ordered beginner < intermediate < advanced < elite.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelElite        Level = "elite"
)

var Levels = []Level{
	LevelBeginner,
	LevelIntermediate,
	LevelAdvanced,
	LevelElite,
}

func (l Level) IsValid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelElite:
		return true
	default:
		return false
	}
}

func (l Level) String() string {
	return string(l)
}

// ValidateLevel returns the canonical level for s, or beginner for anything else.
func ValidateLevel(s string) Level {
	if l := Level(s); l.IsValid() {
		return l
	}
	return LevelBeginner
}
