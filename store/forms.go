package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/sci-platform/riskform/model"
)

// DepartmentsWithForms hydrates the whole maintenance tree in one call:
// every department with its forms, sections, questions and answers. Either
// the complete tree or an error, never partial data.
func (s *Store) DepartmentsWithForms(ctx context.Context) ([]model.Department, error) {
	answers, err := s.answersByQuestion(ctx, 0)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionsBySection(ctx, answers)
	if err != nil {
		return nil, err
	}

	sections, err := s.sectionsByForm(ctx, questions)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT form_id, form_name, form_status, department_dep_id
		FROM axisform
		ORDER BY form_id`)
	if err != nil {
		return nil, errors.Wrap(err, "query forms")
	}
	defer rows.Close()

	forms := map[int][]model.Form{}
	for rows.Next() {
		f := model.Form{}
		err = rows.Scan(&f.ID, &f.Name, &f.Status, &f.DepartmentID)
		if err != nil {
			return nil, errors.Wrap(err, "scan form")
		}
		f.Sections = sections[f.ID]
		if f.Sections == nil {
			f.Sections = []model.Section{}
		}
		forms[f.DepartmentID] = append(forms[f.DepartmentID], f)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate forms")
	}

	depRows, err := s.db.QueryContext(ctx, `
		SELECT dep_id, dep_name, dep_initials
		FROM department
		ORDER BY dep_id`)
	if err != nil {
		return nil, errors.Wrap(err, "query departments")
	}
	defer depRows.Close()

	departments := []model.Department{}
	for depRows.Next() {
		d := model.Department{}
		err = depRows.Scan(&d.ID, &d.Name, &d.Initials)
		if err != nil {
			return nil, errors.Wrap(err, "scan department")
		}
		d.Forms = forms[d.ID]
		if d.Forms == nil {
			d.Forms = []model.Form{}
		}
		departments = append(departments, d)
	}
	return departments, errors.Wrap(depRows.Err(), "iterate departments")
}

// FormByDepartment returns the current form of a department as seen by one
// respondent: the active form if there is one, otherwise the newest, with
// answers restricted to the given user.
func (s *Store) FormByDepartment(ctx context.Context, departmentID, userID int) (model.Form, error) {
	f := model.Form{}
	err := s.db.QueryRowContext(ctx, `
		SELECT form_id, form_name, form_status, department_dep_id
		FROM axisform
		WHERE department_dep_id = ?
		ORDER BY CASE form_status WHEN 'a' THEN 0 ELSE 1 END, form_id DESC
		LIMIT 1`,
		departmentID,
	).Scan(&f.ID, &f.Name, &f.Status, &f.DepartmentID)
	if isNoRows(err) {
		return model.Form{}, ErrNotFound
	}
	if err != nil {
		return model.Form{}, errors.Wrap(err, "query department form")
	}

	answers, err := s.answersByQuestion(ctx, userID)
	if err != nil {
		return model.Form{}, err
	}
	questions, err := s.questionsBySection(ctx, answers)
	if err != nil {
		return model.Form{}, err
	}
	sections, err := s.sectionsByForm(ctx, questions)
	if err != nil {
		return model.Form{}, err
	}

	f.Sections = sections[f.ID]
	if f.Sections == nil {
		f.Sections = []model.Section{}
	}
	return f, nil
}

// answersByQuestion groups answers by owning question. A zero userID means
// all respondents (maintenance view); otherwise only that user's answers.
func (s *Store) answersByQuestion(ctx context.Context, userID int) (map[int][]model.Answer, error) {
	var rows *sql.Rows
	var err error
	if userID == 0 {
		rows, err = s.db.QueryContext(ctx, `
			SELECT answ_id, answ_answer, answ_evidence, question_quest_id, user_usu_id
			FROM answer
			ORDER BY answ_id`)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT answ_id, answ_answer, answ_evidence, question_quest_id, user_usu_id
			FROM answer
			WHERE user_usu_id = ?
			ORDER BY answ_id`,
			userID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "query answers")
	}
	defer rows.Close()

	answers := map[int][]model.Answer{}
	for rows.Next() {
		a := model.Answer{}
		err = rows.Scan(&a.ID, &a.Value, &a.Evidence, &a.QuestionID, &a.UserID)
		if err != nil {
			return nil, errors.Wrap(err, "scan answer")
		}
		answers[a.QuestionID] = append(answers[a.QuestionID], a)
	}
	return answers, errors.Wrap(rows.Err(), "iterate answers")
}

func (s *Store) questionsBySection(ctx context.Context, answers map[int][]model.Answer) (map[int][]model.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT quest_id, quest_ordern, quest_question, section_sect_id
		FROM question
		ORDER BY section_sect_id, quest_ordern`)
	if err != nil {
		return nil, errors.Wrap(err, "query questions")
	}
	defer rows.Close()

	questions := map[int][]model.Question{}
	for rows.Next() {
		q := model.Question{}
		err = rows.Scan(&q.ID, &q.Order, &q.Text, &q.SectionID)
		if err != nil {
			return nil, errors.Wrap(err, "scan question")
		}
		q.Answers = answers[q.ID]
		if q.Answers == nil {
			q.Answers = []model.Answer{}
		}
		questions[q.SectionID] = append(questions[q.SectionID], q)
	}
	return questions, errors.Wrap(rows.Err(), "iterate questions")
}

func (s *Store) sectionsByForm(ctx context.Context, questions map[int][]model.Question) (map[int][]model.Section, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sect_id, sect_name, form_form_id
		FROM section
		ORDER BY sect_id`)
	if err != nil {
		return nil, errors.Wrap(err, "query sections")
	}
	defer rows.Close()

	sections := map[int][]model.Section{}
	for rows.Next() {
		sec := model.Section{}
		err = rows.Scan(&sec.ID, &sec.Name, &sec.FormID)
		if err != nil {
			return nil, errors.Wrap(err, "scan section")
		}
		sec.Questions = questions[sec.ID]
		if sec.Questions == nil {
			sec.Questions = []model.Question{}
		}
		sections[sec.FormID] = append(sections[sec.FormID], sec)
	}
	return sections, errors.Wrap(rows.Err(), "iterate sections")
}
