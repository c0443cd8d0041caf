// service/fixture_service.go
package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"student_e2e_go/model"
)

// FixtureService 场景文件加载
type FixtureService struct {
	root string
}

// NewFixtureService root 用于解析相对路径
func NewFixtureService(root string) *FixtureService {
	return &FixtureService{root: root}
}

// Resolve 相对路径按项目根目录解析
func (f *FixtureService) Resolve(path string) string {
	if filepath.IsAbs(path) || f.root == "" {
		return path
	}
	return filepath.Join(f.root, path)
}

// LoadScenarios 读取并校验场景文件
func (f *FixtureService) LoadScenarios(path string) ([]model.Scenario, error) {
	full := f.Resolve(path)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("读取场景文件失败: %w", err)
	}
	scenarios, err := ParseScenarios(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", full, err)
	}
	log.Infof("已加载 %d 个场景: %s", len(scenarios), full)
	return scenarios, nil
}

// ParseScenarios 解析场景，拒绝未知字段
func ParseScenarios(data []byte) ([]model.Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file model.ScenarioFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("解析场景文件失败: %w", err)
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("场景文件为空")
	}

	seen := make(map[string]bool, len(file.Scenarios))
	for i := range file.Scenarios {
		sc := &file.Scenarios[i]
		if sc.Action == "" {
			sc.Action = model.ActionAdd
		}
		if err := validateScenario(*sc); err != nil {
			return nil, fmt.Errorf("场景 #%d %q: %w", i+1, sc.Name, err)
		}
		if seen[sc.Name] {
			return nil, fmt.Errorf("场景名称重复: %q", sc.Name)
		}
		seen[sc.Name] = true
	}
	return file.Scenarios, nil
}

func validateScenario(sc model.Scenario) error {
	if sc.Name == "" {
		return fmt.Errorf("缺少 name")
	}
	switch sc.Action {
	case model.ActionAdd:
	case model.ActionEdit:
		if sc.StudentID <= 0 {
			return fmt.Errorf("edit 场景需要 studentId")
		}
	default:
		return fmt.Errorf("未知的 action %q", sc.Action)
	}
	if sc.Student.Gender != "" {
		if _, ok := model.ParseGender(sc.Student.Gender); !ok {
			return fmt.Errorf("未知的 gender %q", sc.Student.Gender)
		}
	}
	for field := range sc.Expect.Errors {
		if !slices.Contains(model.FormFields, field) {
			return fmt.Errorf("expect.errors 中未知的字段 %q", field)
		}
	}
	if sc.Expect.Success != nil && *sc.Expect.Success && len(sc.Expect.Errors) > 0 {
		return fmt.Errorf("预期成功的场景不应列出错误")
	}
	return nil
}
