package i18n

import (
	"context"
	"testing"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	if err := Init(lang); err != nil {
		t.Fatalf("Init(%q): %v", lang, err)
	}
	loc := NewLocalizer(lang)
	return WithLocalizer(context.Background(), loc)
}

func TestTranslate(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "AppTitle")
	if got != "Quizmaster" {
		t.Errorf("T(AppTitle) = %q, want 'Quizmaster'", got)
	}

	got = T(ctx, "QuizExpired")
	if got != "This quiz is expired" {
		t.Errorf("T(QuizExpired) = %q, want 'This quiz is expired'", got)
	}
}

func TestTemplateDataTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	got := Td(ctx, "YourScore", map[string]any{"Score": 3, "Total": 5})
	if got != "You scored 3 out of 5." {
		t.Errorf("Td(YourScore) = %q", got)
	}
}

func TestMissingKey(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "NonExistentKey")
	if got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q, want 'NonExistentKey'", got)
	}
}
