// Package locale holds the user-visible strings the renderer writes into
// rendered content, keyed by language.
//
// Strings are registered in an x/text message catalog. Unknown or
// malformed language tags fall back to English.
package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "en"

// Catalog keys. The English text doubles as the key.
const (
	keyPhishingWarning         = "Link expanded to plain text; beware of a potential phishing attempt"
	keyNoImage                 = "Images not shown"
	keyBrokenImage             = "An image in this post did not save properly."
	keyAccountNameWrongLength  = "Account name should be between 3 and 16 characters long"
	keyAccountNameBadActor     = "This account is on a bad actor list"
	keyAccountNameWrongSegment = "This account name contains a bad segment"
)

// Messages is the resolved set of strings for one language.
type Messages struct {
	Tag                     language.Tag
	PhishingWarning         string
	NoImage                 string
	BrokenImage             string
	AccountNameWrongLength  string
	AccountNameBadActor     string
	AccountNameWrongSegment string
}

var supported = []language.Tag{
	language.English,
	language.German,
	language.Spanish,
	language.Polish,
}

var translations = map[language.Tag]map[string]string{
	language.German: {
		keyPhishingWarning:         "Link als reiner Text dargestellt; Vorsicht vor einem möglichen Phishing-Versuch",
		keyNoImage:                 "Bilder werden nicht angezeigt",
		keyBrokenImage:             "Ein Bild in diesem Beitrag wurde nicht korrekt gespeichert.",
		keyAccountNameWrongLength:  "Der Kontoname muss zwischen 3 und 16 Zeichen lang sein",
		keyAccountNameBadActor:     "Dieses Konto steht auf einer Liste bekannter Betrüger",
		keyAccountNameWrongSegment: "Dieser Kontoname enthält ein ungültiges Segment",
	},
	language.Spanish: {
		keyPhishingWarning:         "Enlace mostrado como texto plano; cuidado con un posible intento de phishing",
		keyNoImage:                 "Las imágenes no se muestran",
		keyBrokenImage:             "Una imagen de esta publicación no se guardó correctamente.",
		keyAccountNameWrongLength:  "El nombre de cuenta debe tener entre 3 y 16 caracteres",
		keyAccountNameBadActor:     "Esta cuenta está en una lista de actores maliciosos",
		keyAccountNameWrongSegment: "Este nombre de cuenta contiene un segmento no válido",
	},
	language.Polish: {
		keyPhishingWarning:         "Link wyświetlony jako zwykły tekst; uwaga na możliwą próbę phishingu",
		keyNoImage:                 "Obrazy nie są wyświetlane",
		keyBrokenImage:             "Obraz w tym wpisie nie został poprawnie zapisany.",
		keyAccountNameWrongLength:  "Nazwa konta musi mieć od 3 do 16 znaków",
		keyAccountNameBadActor:     "To konto znajduje się na liście szkodliwych kont",
		keyAccountNameWrongSegment: "Ta nazwa konta zawiera nieprawidłowy segment",
	},
}

var (
	cat     = buildCatalog()
	matcher = language.NewMatcher(supported)
)

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			// SetString only fails for malformed messages; these are literals.
			if err := b.SetString(tag, key, msg); err != nil {
				panic("locale: " + err.Error())
			}
		}
	}
	return b
}

// Match resolves a BCP 47 tag to the closest supported language.
func Match(lang string) language.Tag {
	if lang == "" {
		return language.English
	}
	t, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

// Supported reports whether lang parses as a BCP 47 tag. Tags outside the
// catalog are still accepted and render in English.
func Supported(lang string) bool {
	_, err := language.Parse(lang)
	return err == nil
}

// For returns the strings for lang.
func For(lang string) Messages {
	tag := Match(lang)
	p := message.NewPrinter(tag, message.Catalog(cat))
	return Messages{
		Tag:                     tag,
		PhishingWarning:         p.Sprintf(keyPhishingWarning),
		NoImage:                 p.Sprintf(keyNoImage),
		BrokenImage:             p.Sprintf(keyBrokenImage),
		AccountNameWrongLength:  p.Sprintf(keyAccountNameWrongLength),
		AccountNameBadActor:     p.Sprintf(keyAccountNameBadActor),
		AccountNameWrongSegment: p.Sprintf(keyAccountNameWrongSegment),
	}
}
