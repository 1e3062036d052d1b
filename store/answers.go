package store

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sci-platform/riskform/model"
)

// SaveAnswer records a respondent's answer to a question, creating or
// overwriting their single answer row (last write wins). Questions outside
// the caller's own department are reported as not found.
func (s *Store) SaveAnswer(ctx context.Context, questionID, userID, departmentID int, value string) (model.Answer, error) {
	var questionDept int
	err := s.db.QueryRowContext(ctx, `
		SELECT f.department_dep_id
		FROM question q
		INNER JOIN section s ON (q.section_sect_id = s.sect_id)
		INNER JOIN axisform f ON (s.form_form_id = f.form_id)
		WHERE q.quest_id = ?`,
		questionID,
	).Scan(&questionDept)
	if isNoRows(err) {
		return model.Answer{}, ErrNotFound
	}
	if err != nil {
		return model.Answer{}, errors.Wrap(err, "query question department")
	}
	if questionDept != departmentID {
		return model.Answer{}, ErrNotFound
	}

	a := model.Answer{Value: value, QuestionID: questionID, UserID: userID}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO answer (answ_answer, question_quest_id, user_usu_id)
		VALUES (?, ?, ?)
		ON CONFLICT (question_quest_id, user_usu_id)
		DO UPDATE SET answ_answer = excluded.answ_answer
		RETURNING answ_id, answ_evidence`,
		value, questionID, userID,
	).Scan(&a.ID, &a.Evidence)
	if err != nil {
		return model.Answer{}, errors.Wrap(err, "upsert answer")
	}
	return a, nil
}

// SetAnswerEvidence stores the URL of an uploaded evidence file on an
// answer. Re-setting the same URL is a no-op in effect.
func (s *Store) SetAnswerEvidence(ctx context.Context, answerID int, url string) (model.Answer, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE answer SET answ_evidence = ? WHERE answ_id = ?`,
		url, answerID,
	)
	if err != nil {
		return model.Answer{}, errors.Wrap(err, "update answer evidence")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Answer{}, errors.Wrap(err, "update answer evidence verify")
	}
	if n < 1 {
		return model.Answer{}, ErrNotFound
	}

	return s.AnswerByID(ctx, answerID)
}

func (s *Store) AnswerByID(ctx context.Context, answerID int) (model.Answer, error) {
	a := model.Answer{}
	err := s.db.QueryRowContext(ctx, `
		SELECT answ_id, answ_answer, answ_evidence, question_quest_id, user_usu_id
		FROM answer
		WHERE answ_id = ?`,
		answerID,
	).Scan(&a.ID, &a.Value, &a.Evidence, &a.QuestionID, &a.UserID)
	if isNoRows(err) {
		return model.Answer{}, ErrNotFound
	}
	return a, errors.Wrap(err, "query answer by id")
}
