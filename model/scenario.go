package model

import (
	"fmt"
	"time"
)

// ScenarioAction 场景入口
type ScenarioAction string

const (
	ActionAdd  ScenarioAction = "add"
	ActionEdit ScenarioAction = "edit"
)

// Scenario 一个表单场景：打开弹窗、填写、提交、核对结果
type Scenario struct {
	Name      string         `yaml:"name"`      //场景名称
	Action    ScenarioAction `yaml:"action"`    //add / edit
	StudentID int            `yaml:"studentId"` //编辑场景的学生 id
	Student   Student        `yaml:"student"`   //填写的内容
	Status    *bool          `yaml:"status"`    //为空时保持启用
	Expect    Expectation    `yaml:"expect"`    //为空时由校验规则推导
}

// Expectation 预期结果，未填写的部分由校验规则推导
type Expectation struct {
	Success *bool             `yaml:"success"`
	Errors  map[string]string `yaml:"errors"` //字段名 -> 行内错误文案
}

// ScenarioFile 场景文件
type ScenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// ScenarioResult 单个场景的执行结果
type ScenarioResult struct {
	Name     string
	Passed   bool
	Failures []string
	Duration time.Duration
}

// Failf 记录一条失败
func (r *ScenarioResult) Failf(format string, args ...any) {
	r.Passed = false
	r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
}
