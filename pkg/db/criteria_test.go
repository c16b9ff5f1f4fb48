package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAchievementCriteria(t *testing.T) {
	tests := []struct {
		name        string
		achievement Achievement
		want        Criteria
	}{
		{
			name:        "tasks completed",
			achievement: Achievement{CriteriaType: CriteriaTasksCompleted, CriteriaValue: 10},
			want:        TasksCompletedCriteria{Threshold: 10},
		},
		{
			name:        "hours volunteered",
			achievement: Achievement{CriteriaType: CriteriaHoursVolunteered, CriteriaValue: 12.5},
			want:        HoursVolunteeredCriteria{Threshold: 12.5},
		},
		{
			name:        "skill tasks",
			achievement: Achievement{CriteriaType: CriteriaSkillTasks, CriteriaValue: 5, CriteriaSkill: "Graphic Design"},
			want:        SkillTasksCriteria{Skill: "Graphic Design", Threshold: 5},
		},
		{
			name:        "custom",
			achievement: Achievement{CriteriaType: CriteriaCustom},
			want:        CustomCriteria{},
		},
		{
			name:        "unknown resolves to custom",
			achievement: Achievement{CriteriaType: "streak_days", CriteriaValue: 7},
			want:        CustomCriteria{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.achievement.Criteria())
		})
	}
}
