package db

// Criteria type strings as persisted on achievement templates
const (
	CriteriaTasksCompleted   = "tasks_completed"
	CriteriaHoursVolunteered = "hours_volunteered"
	CriteriaSkillTasks       = "skill_tasks"
	CriteriaCustom           = "custom"
)

// Criteria is the unlock rule of an achievement template. Each kind carries
// its own typed payload; evaluation switches exhaustively over the variants.
type Criteria interface {
	isCriteria()
}

// TasksCompletedCriteria unlocks once a user's completed-task counter
// reaches the threshold
type TasksCompletedCriteria struct {
	Threshold int
}

// HoursVolunteeredCriteria unlocks once a user's volunteered hours reach
// the threshold
type HoursVolunteeredCriteria struct {
	Threshold float64
}

// SkillTasksCriteria unlocks once a user has completed enough tasks in one
// skill category
type SkillTasksCriteria struct {
	Skill     string
	Threshold int
}

// CustomCriteria never auto-unlocks; reserved for manually granted awards
type CustomCriteria struct{}

func (TasksCompletedCriteria) isCriteria() {}

func (HoursVolunteeredCriteria) isCriteria() {}

func (SkillTasksCriteria) isCriteria() {}

func (CustomCriteria) isCriteria() {}

// Criteria parses the stored criteria columns into their typed variant.
// Unknown criteria types resolve to CustomCriteria.
func (a *Achievement) Criteria() Criteria {
	switch a.CriteriaType {
	case CriteriaTasksCompleted:
		return TasksCompletedCriteria{Threshold: int(a.CriteriaValue)}
	case CriteriaHoursVolunteered:
		return HoursVolunteeredCriteria{Threshold: a.CriteriaValue}
	case CriteriaSkillTasks:
		return SkillTasksCriteria{Skill: a.CriteriaSkill, Threshold: int(a.CriteriaValue)}
	default:
		return CustomCriteria{}
	}
}
