package model

import (
	"time"

	"gorm.io/datatypes"
)

// Candidate 表示看板列表中的一位候选人
// 中文注释说明字段用途
// - ID: 外部 ATS 的唯一标识
// - Skills: 技能列表，按录入顺序保存
// - SalaryExpectation: 期望年薪，单位千
// - MatchScore: 与当前职位的匹配度 0-100
// - Attributes: 其他来源字段，键值对
// - CreatedAt/UpdatedAt: 由 GORM 自动维护

type Candidate struct {
	ID                 string                      `gorm:"primaryKey" json:"id" yaml:"id"`
	Name               string                      `json:"name" yaml:"name"`
	Title              string                      `json:"title" yaml:"title"`
	Email              string                      `json:"email" yaml:"email"`
	Status             string                      `gorm:"index" json:"status" yaml:"status"`
	Location           string                      `json:"location" yaml:"location"`
	Skills             datatypes.JSONSlice[string] `json:"skills" yaml:"skills"`
	Availability       string                      `json:"availability" yaml:"availability"`
	JobType            string                      `json:"job_type" yaml:"job_type"`
	EducationLevel     string                      `json:"education_level" yaml:"education_level"`
	ClientType         string                      `json:"client_type" yaml:"client_type"`
	SalaryExpectation  float64                     `json:"salary_expectation" yaml:"salary_expectation"`
	ExperienceYears    float64                     `json:"experience_years" yaml:"experience_years"`
	MatchScore         float64                     `json:"match_score" yaml:"match_score"`
	VerificationStatus string                      `json:"verification_status" yaml:"verification_status"`
	LastActiveAt       *time.Time                  `json:"last_active_at,omitempty" yaml:"last_active_at"`
	Attributes         datatypes.JSONMap           `json:"attributes,omitempty" yaml:"attributes"`
	CreatedAt          time.Time                   `json:"created_at" yaml:"-"`
	UpdatedAt          time.Time                   `json:"updated_at" yaml:"-"`
}
