package flow

import "github.com/sci-platform/riskform/model"

// MaintenanceView is the admin form-maintenance state: the department tree,
// the flattened form and question lists, and the current selection.
type MaintenanceView struct {
	departments []model.Department
	forms       []model.Form
	questions   []model.Question

	activeDepartment int
	selected         *model.Form
	page             int
}

// NewMaintenanceView flattens the department tree the way the maintenance
// page consumes it and preselects the first form, when there is one.
func NewMaintenanceView(departments []model.Department) *MaintenanceView {
	v := &MaintenanceView{departments: departments}
	for _, dep := range departments {
		v.forms = append(v.forms, dep.Forms...)
		for _, form := range dep.Forms {
			for _, sec := range form.Sections {
				v.questions = append(v.questions, sec.Questions...)
			}
		}
	}
	if len(departments) > 0 && len(departments[0].Forms) > 0 {
		form := departments[0].Forms[0]
		v.selected = &form
	}
	return v
}

func (v *MaintenanceView) Departments() []model.Department {
	return v.departments
}

// SelectDepartment switches the active department, resets the page and moves
// the selection onto the department's first form. Out-of-range indexes are
// ignored.
func (v *MaintenanceView) SelectDepartment(index int) {
	if index < 0 || index >= len(v.departments) {
		return
	}
	v.activeDepartment = index
	v.page = 0
	v.selected = nil
	if forms := v.departments[index].Forms; len(forms) > 0 {
		form := forms[0]
		v.selected = &form
	}
}

// DepartmentForms projects the flattened form list onto the active
// department.
func (v *MaintenanceView) DepartmentForms() []model.Form {
	if v.activeDepartment >= len(v.departments) {
		return nil
	}
	depID := v.departments[v.activeDepartment].ID
	forms := []model.Form{}
	for _, f := range v.forms {
		if f.DepartmentID == depID {
			forms = append(forms, f)
		}
	}
	return forms
}

func (v *MaintenanceView) SelectForm(form model.Form) {
	v.selected = &form
	v.page = 0
}

func (v *MaintenanceView) SelectedForm() *model.Form {
	return v.selected
}

// Editable reports whether the selected form accepts structural edits.
func (v *MaintenanceView) Editable() bool {
	return v.selected != nil && v.selected.Editable()
}

func (v *MaintenanceView) Page() int {
	return v.page
}

func (v *MaintenanceView) GoToPage(target int) bool {
	if v.selected == nil || target < 0 || target >= len(v.selected.Sections) {
		return false
	}
	v.page = target
	return true
}

// SectionQuestions projects the flattened question list onto the section of
// the current page, insertion order.
func (v *MaintenanceView) SectionQuestions() []model.Question {
	if v.selected == nil || v.page >= len(v.selected.Sections) {
		return nil
	}
	sectID := v.selected.Sections[v.page].ID
	questions := []model.Question{}
	for _, q := range v.questions {
		if q.SectionID == sectID {
			questions = append(questions, q)
		}
	}
	return questions
}
