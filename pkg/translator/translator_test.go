package translator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DeTr1ll/Task-Manager/pkg/translator"

	"github.com/nicksnyder/go-i18n/v2/i18n"
)

func localize(t *testing.T, lang, messageID string) (string, error) {
	t.Helper()
	localizer := i18n.NewLocalizer(translator.Translator, lang)
	return localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID})
}

func TestInitTranslator_LoadsMessages(t *testing.T) {
	dir := t.TempDir()

	content := []byte(`
taskNotFound = "Task not found."
invalidStatus = "Unknown task status."
`)
	if err := os.WriteFile(filepath.Join(dir, "en.toml"), content, 0644); err != nil {
		t.Fatalf("failed to write en.toml: %v", err)
	}

	translator.InitTranslator(translator.Config{
		TranslationFolder:  dir,
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	msg, err := localize(t, translator.LanguageEn, "taskNotFound")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if msg != "Task not found." {
		t.Errorf("expected %q, got %q", "Task not found.", msg)
	}
}

func TestInitTranslator_SkipsNonTomlFiles(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "en.toml"), []byte(`taskNotFound = "Task not found."`), 0644); err != nil {
		t.Fatalf("failed to write en.toml: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a message file"), 0644); err != nil {
		t.Fatalf("failed to write notes.txt: %v", err)
	}

	translator.InitTranslator(translator.Config{
		TranslationFolder:  dir,
		SupportedLanguages: []string{translator.LanguageEn},
	})

	if _, err := localize(t, translator.LanguageEn, "taskNotFound"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestInitTranslator_ShippedTranslations(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "translation",
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	for _, lang := range []string{translator.LanguageEn, translator.LanguageFr} {
		if _, err := localize(t, lang, "taskNotFound"); err != nil {
			t.Errorf("missing %s translation for taskNotFound: %v", lang, err)
		}
	}
}

func TestInitTranslator_InvalidFolder(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "/path/does/not/exist",
		SupportedLanguages: []string{translator.LanguageEn},
	})
}
