package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/sci-platform/riskform/model"
)

// CreateForm adds a new draft form to a department.
func (s *Store) CreateForm(ctx context.Context, departmentID int, name string) (model.Form, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM department WHERE dep_id = ?`,
		departmentID,
	).Scan(&exists)
	if isNoRows(err) {
		return model.Form{}, ErrNotFound
	}
	if err != nil {
		return model.Form{}, errors.Wrap(err, "query department")
	}

	f := model.Form{Name: name, Status: model.FormStatusDraft, DepartmentID: departmentID, Sections: []model.Section{}}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO axisform (form_name, form_status, department_dep_id)
		VALUES (?, ?, ?)
		RETURNING form_id`,
		name, model.FormStatusDraft, departmentID,
	).Scan(&f.ID)
	if err != nil {
		return model.Form{}, errors.Wrap(err, "insert form")
	}
	return f, nil
}

// SetFormStatus activates or deactivates a form. Deactivated ("d") forms are
// the editable ones.
func (s *Store) SetFormStatus(ctx context.Context, formID int, status string) (model.Form, error) {
	if status != model.FormStatusDraft && status != model.FormStatusActive {
		return model.Form{}, ErrInvalidState
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE axisform SET form_status = ? WHERE form_id = ?`,
		status, formID,
	)
	if err != nil {
		return model.Form{}, errors.Wrap(err, "update form status")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Form{}, errors.Wrap(err, "update form status verify")
	}
	if n < 1 {
		return model.Form{}, ErrNotFound
	}

	f := model.Form{}
	err = s.db.QueryRowContext(ctx, `
		SELECT form_id, form_name, form_status, department_dep_id
		FROM axisform
		WHERE form_id = ?`,
		formID,
	).Scan(&f.ID, &f.Name, &f.Status, &f.DepartmentID)
	return f, errors.Wrap(err, "query form")
}

// CreateSection adds a section to a draft form.
func (s *Store) CreateSection(ctx context.Context, formID int, name string) (sec model.Section, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return sec, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	err = checkFormDraft(ctx, tx, formID)
	if err != nil {
		return sec, err
	}

	sec = model.Section{Name: name, FormID: formID, Questions: []model.Question{}}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO section (sect_name, form_form_id)
		VALUES (?, ?)
		RETURNING sect_id`,
		name, formID,
	).Scan(&sec.ID)
	if err != nil {
		return sec, errors.Wrap(err, "insert section")
	}

	return sec, errors.Wrap(tx.Commit(), "commit section")
}

// CreateQuestion adds a question to a section, provided the owning form is
// still a draft.
func (s *Store) CreateQuestion(ctx context.Context, sectionID, order int, text string) (q model.Question, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return q, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	var formID int
	err = tx.QueryRowContext(ctx, `
		SELECT form_form_id FROM section WHERE sect_id = ?`,
		sectionID,
	).Scan(&formID)
	if isNoRows(err) {
		return q, ErrNotFound
	}
	if err != nil {
		return q, errors.Wrap(err, "query section")
	}

	err = checkFormDraft(ctx, tx, formID)
	if err != nil {
		return q, err
	}

	q = model.Question{Order: order, Text: text, SectionID: sectionID, Answers: []model.Answer{}}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO question (quest_ordern, quest_question, section_sect_id)
		VALUES (?, ?, ?)
		RETURNING quest_id`,
		order, text, sectionID,
	).Scan(&q.ID)
	if err != nil {
		return q, errors.Wrap(err, "insert question")
	}

	return q, errors.Wrap(tx.Commit(), "commit question")
}

// UpdateQuestion rewrites a question's order and prompt, draft forms only.
func (s *Store) UpdateQuestion(ctx context.Context, questionID, order int, text string) (q model.Question, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return q, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	formID, err := questionFormID(ctx, tx, questionID)
	if err != nil {
		return q, err
	}
	err = checkFormDraft(ctx, tx, formID)
	if err != nil {
		return q, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE question SET quest_ordern = ?, quest_question = ?
		WHERE quest_id = ?`,
		order, text, questionID,
	)
	if err != nil {
		return q, errors.Wrap(err, "update question")
	}

	err = tx.QueryRowContext(ctx, `
		SELECT quest_id, quest_ordern, quest_question, section_sect_id
		FROM question
		WHERE quest_id = ?`,
		questionID,
	).Scan(&q.ID, &q.Order, &q.Text, &q.SectionID)
	if err != nil {
		return q, errors.Wrap(err, "query question")
	}
	q.Answers = []model.Answer{}

	return q, errors.Wrap(tx.Commit(), "commit question")
}

// DeleteQuestion removes a question and its answers, draft forms only.
func (s *Store) DeleteQuestion(ctx context.Context, questionID int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	formID, err := questionFormID(ctx, tx, questionID)
	if err != nil {
		return err
	}
	err = checkFormDraft(ctx, tx, formID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM answer WHERE question_quest_id = ?`,
		questionID,
	)
	if err != nil {
		return errors.Wrap(err, "delete question answers")
	}
	_, err = tx.ExecContext(ctx, `
		DELETE FROM question WHERE quest_id = ?`,
		questionID,
	)
	if err != nil {
		return errors.Wrap(err, "delete question")
	}

	return errors.Wrap(tx.Commit(), "commit delete question")
}

func questionFormID(ctx context.Context, tx *sql.Tx, questionID int) (int, error) {
	var formID int
	err := tx.QueryRowContext(ctx, `
		SELECT s.form_form_id
		FROM question q
		INNER JOIN section s ON (q.section_sect_id = s.sect_id)
		WHERE q.quest_id = ?`,
		questionID,
	).Scan(&formID)
	if isNoRows(err) {
		return 0, ErrNotFound
	}
	return formID, errors.Wrap(err, "query question form")
}

// checkFormDraft is the server-side edit gate: structural mutations are only
// legal while the owning form is in draft status.
func checkFormDraft(ctx context.Context, tx *sql.Tx, formID int) error {
	var status string
	err := tx.QueryRowContext(ctx, `
		SELECT form_status FROM axisform WHERE form_id = ?`,
		formID,
	).Scan(&status)
	if isNoRows(err) {
		return ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "query form status")
	}
	if status != model.FormStatusDraft {
		return ErrFormLocked
	}
	return nil
}
