// Package flow holds the page-scoped view state of the questionnaire UI as
// explicit objects: the respondent flow, the maintenance view and the TI
// user table. Nothing here is process-global; every consumer owns its own
// instance.
package flow

import "github.com/sci-platform/riskform/model"

// RespondFlow drives a respondent through their department's form: it starts
// loading, becomes ready once the form arrives, and then tracks the current
// section page. One page per section.
type RespondFlow struct {
	form    *model.Form
	page    int
	saveErr error
}

func NewRespondFlow() *RespondFlow {
	return &RespondFlow{}
}

// Loading reports whether the form has not arrived yet.
func (f *RespondFlow) Loading() bool {
	return f.form == nil
}

// Load installs a freshly fetched form, resetting navigation and any save
// outcome left over from a previous form.
func (f *RespondFlow) Load(form model.Form) {
	f.form = &form
	f.page = 0
	f.saveErr = nil
}

func (f *RespondFlow) Form() *model.Form {
	return f.form
}

func (f *RespondFlow) Page() int {
	return f.page
}

// GoToPage navigates to a section page. Targets outside [0, sectionCount)
// are ignored: the page does not move and no error is raised.
func (f *RespondFlow) GoToPage(target int) bool {
	if f.form == nil || target < 0 || target >= len(f.form.Sections) {
		return false
	}
	f.page = target
	return true
}

// Section returns the section currently shown.
func (f *RespondFlow) Section() (model.Section, bool) {
	if f.form == nil || len(f.form.Sections) == 0 {
		return model.Section{}, false
	}
	return f.form.Sections[f.page], true
}

// RecordSave notes the outcome of an autosave so the caller can surface it.
// On success the saved answer replaces the question's canonical answer.
func (f *RespondFlow) RecordSave(answer model.Answer, err error) {
	f.saveErr = err
	if err != nil || f.form == nil {
		return
	}
	for si := range f.form.Sections {
		questions := f.form.Sections[si].Questions
		for qi := range questions {
			if questions[qi].ID == answer.QuestionID {
				questions[qi].Answers = []model.Answer{answer}
				return
			}
		}
	}
}

// LastSaveError returns the outcome of the most recent autosave, nil when it
// succeeded.
func (f *RespondFlow) LastSaveError() error {
	return f.saveErr
}
