package translator

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

//go:embed translation/*.toml
var embeddedTranslations embed.FS

type Config struct {
	// TranslationFolder overrides the catalogs compiled into the binary.
	TranslationFolder  string
	SupportedLanguages []string // List of supported languages
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

var (
	supported = []language.Tag{language.English, language.French}
	matcher   = language.NewMatcher(supported)
)

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if len(cfg.SupportedLanguages) > 0 {
		tags := make([]language.Tag, 0, len(cfg.SupportedLanguages))
		for _, lang := range cfg.SupportedLanguages {
			tag, err := language.Parse(lang)
			if err != nil {
				zap.L().Warn("unsupported language", zap.String("lang", lang), zap.Error(err))
				continue
			}
			tags = append(tags, tag)
		}
		if len(tags) > 0 {
			supported = tags
			matcher = language.NewMatcher(tags)
		}
	}

	if cfg.TranslationFolder == "" {
		loadFS(embeddedTranslations, "translation")
		return
	}
	loadFS(os.DirFS(cfg.TranslationFolder), ".")
}

func loadFS(fsys fs.FS, dir string) {
	// List files in the translation folder
	lstFiles, err := fs.ReadDir(fsys, dir)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", dir), zap.Error(err))
		return
	}

	for _, f := range lstFiles {
		if f.IsDir() {
			continue
		}
		name := path.Join(dir, f.Name())
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			zap.L().Warn("failed to read translation file", zap.String("file", f.Name()), zap.Error(err))
			continue
		}

		if _, err := Translator.ParseMessageFileBytes(content, f.Name()); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(fmt.Errorf("parse %s: %w", name, err)))
		}
	}
}

// MatchLanguage picks the best supported language for an Accept-Language
// header value, defaulting to English.
func MatchLanguage(header string) string {
	if header == "" {
		return LanguageEn
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return LanguageEn
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return LanguageEn
	}
	base, _ := supported[index].Base()
	return base.String()
}
