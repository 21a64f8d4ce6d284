package store

import (
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/tessera-app/tessera/domain"
)

func TestReplaceComponents(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	s := New(nil)
	components := []*domain.PromptComponent{
		{ID: "pc_1", Position: 0, ComponentPromptID: str("prompt_2"), CustomTextBefore: str("X ")},
		{ID: "pc_2", Position: 1, CustomTextBefore: str("tail")},
	}

	// mockContext carries the mock as a transaction, so WithTx joins it
	// instead of opening a new one.
	mock.ExpectExec("DELETE FROM prompt_components").
		WithArgs("prompt_1").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec("INSERT INTO prompt_components").
		WithArgs("pc_1", "prompt_1", str("prompt_2"), 0, str("X "), nil).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO prompt_components").
		WithArgs("pc_2", "prompt_1", nil, 1, str("tail"), nil).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := s.ReplaceComponents(mockContext(mock), "prompt_1", components); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestReplaceComponents_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	s := New(nil)

	mock.ExpectExec("DELETE FROM prompt_components").
		WithArgs("prompt_1").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	if err := s.ReplaceComponents(mockContext(mock), "prompt_1", nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
