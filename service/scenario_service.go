// service/scenario_service.go
package service

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	log "github.com/sirupsen/logrus"

	locators "student_e2e_go/Locators"
	"student_e2e_go/model"
	"student_e2e_go/pages"
)

// ScenarioService 在一个会话上依次执行场景
type ScenarioService struct {
	session *pages.Session
	rules   *StudentRules
}

func NewScenarioService(session *pages.Session, rules *StudentRules) *ScenarioService {
	return &ScenarioService{session: session, rules: rules}
}

// Expected 场景的预期结果：显式填写的优先，其余按校验规则推导
func (s *ScenarioService) Expected(sc model.Scenario) (success bool, errs map[string]string) {
	derived := s.rules.Validate(sc.Student)
	errs = sc.Expect.Errors
	if errs == nil {
		errs = derived
	}
	if sc.Expect.Success != nil {
		return *sc.Expect.Success, errs
	}
	return len(errs) == 0, errs
}

// RunAll 顺序执行，某个场景失败不影响后续场景
func (s *ScenarioService) RunAll(ctx context.Context, scenarios []model.Scenario) []model.ScenarioResult {
	results := make([]model.ScenarioResult, 0, len(scenarios))
	for _, sc := range scenarios {
		if ctx.Err() != nil {
			log.Warnf("执行被中断，跳过剩余 %d 个场景", len(scenarios)-len(results))
			break
		}
		res := s.Run(ctx, sc)
		if res.Passed {
			log.WithField("duration", res.Duration).Infof("✓ %s", res.Name)
		} else {
			for _, f := range res.Failures {
				log.Errorf("✗ %s: %s", res.Name, f)
			}
		}
		results = append(results, res)
	}

	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	log.Infof("场景执行完成: 通过 %d / 共 %d", passed, len(results))
	return results
}

// Run 执行单个场景
func (s *ScenarioService) Run(ctx context.Context, sc model.Scenario) model.ScenarioResult {
	start := time.Now()
	res := model.ScenarioResult{Name: sc.Name, Passed: true}
	s.execute(ctx, sc, &res)
	res.Duration = time.Since(start)
	return res
}

func (s *ScenarioService) execute(ctx context.Context, sc model.Scenario, res *model.ScenarioResult) {
	modal, err := s.open(ctx, sc)
	if err != nil {
		res.Failf("%v", err)
		return
	}
	if err := modal.FillValidStudentForm(ctx, sc.Student); err != nil {
		res.Failf("fill form: %v", err)
		return
	}
	if sc.Status != nil {
		if err := modal.SetStatusActive(ctx, *sc.Status); err != nil {
			res.Failf("set status: %v", err)
			return
		}
	}
	if _, err := modal.Submit(ctx); err != nil {
		res.Failf("submit: %v", err)
		return
	}
	if err := modal.WaitForNotification(ctx); err != nil {
		res.Failf("wait for notification: %v", err)
		return
	}

	success, errs := s.Expected(sc)
	s.verify(ctx, modal, success, errs, res)
}

func (s *ScenarioService) open(ctx context.Context, sc model.Scenario) (*pages.StudentModal, error) {
	home, err := s.session.Open(ctx)
	if err != nil {
		return nil, err
	}
	list, err := home.NavigateToStudentsManagement(ctx)
	if err != nil {
		return nil, err
	}
	if sc.Action == model.ActionEdit {
		return list.NavigateToEditStudent(ctx, sc.StudentID)
	}
	return list.NavigateToAddStudent(ctx)
}

// verify 失败信息同时给出预期值和实际值
func (s *ScenarioService) verify(ctx context.Context, modal *pages.StudentModal, success bool, want map[string]string, res *model.ScenarioResult) {
	state := modal.Notification().State(ctx)

	if success {
		if !state.IsSuccess() {
			res.Failf("notification title: expected %q, got %q (body %q)", model.SuccessTitle, state.Title, state.Body)
		}
		if got := modal.SuccessMessageText(ctx); got != locators.SuccessPhrase {
			res.Failf("success message: expected %q, got %q", locators.SuccessPhrase, got)
		}
		if err := modal.WaitUntilClosed(ctx); err != nil {
			res.Failf("modal: expected closed, got %s", modal.State(ctx))
		}
		return
	}

	if !state.IsError() {
		res.Failf("notification title: expected %q, got %q (body %q)", model.ErrorTitle, state.Title, state.Body)
	}
	if !modal.IsModalVisible(ctx) {
		res.Failf("modal: expected open, got %s", model.ModalClosed)
	}
	got := modal.Errors().VisibleErrors(ctx)
	for _, field := range sortedKeys(want, got) {
		w, wok := want[field]
		g, gok := got[field]
		switch {
		case wok && !gok:
			res.Failf("%s: expected error %q, got none", field, w)
		case !wok && gok:
			res.Failf("%s: expected no error, got %q", field, g)
		case w != g:
			res.Failf("%s: expected error %q, got %q", field, w, g)
		}
	}
}

func sortedKeys(a, b map[string]string) []string {
	keys := slices.Collect(maps.Keys(a))
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Summary 汇总结果，全部通过时返回 nil
func Summary(results []model.ScenarioResult) error {
	var failed []string
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r.Name)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d/%d 个场景失败: %v", len(failed), len(results), failed)
	}
	return nil
}
