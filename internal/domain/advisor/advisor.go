// Package advisor implementa el asistente de síntomas por reglas: matching
// de keywords sobre texto libre cruzado con los medicamentos a mano.
// No diagnostica nada; sugiere qué del botiquín puede servir y qué falta.
package advisor

import (
	"fmt"
	"regexp"
	"strings"

	"home-aidkit/internal/domain/medicines"
)

// Language del texto de salida (pasos de cuidado y resumen).
type Language string

const (
	LanguageEN Language = "en"
	LanguageRU Language = "ru"
)

type KitRecommendation struct {
	MedicineID string
	Name       string
	ForSymptom SymptomTag
}

// Advice es el resultado completo del asistente; las listas pueden venir
// vacías pero nunca nil-inesperado, y no hay condiciones de error.
type Advice struct {
	DetectedSymptoms   []SymptomTag
	UrgentFlags        []string
	RecommendedFromKit []KitRecommendation
	MissingCategories  []Category
	SelfCareSteps      []string
	Summary            string
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// BuildAdvice analiza el texto libre contra las tablas estáticas.
//
// Asignación y cobertura se calculan por separado a propósito: un
// medicamento se asigna a un solo slot síntoma/categoría (el primero que
// lo matchea), pero una categoría cuenta como cubierta si CUALQUIER
// medicamento la matchea, esté asignado o no.
func BuildAdvice(freeText string, meds []medicines.Medicine, lang Language) Advice {
	lang = normalizeLanguage(lang)
	text := normalize(freeText)

	detected := make([]SymptomTag, 0)
	for _, entry := range symptomKeywords {
		if includesAny(text, entry.keywords) {
			detected = append(detected, entry.tag)
		}
	}

	urgent := make([]string, 0)
	for _, flag := range redFlags {
		if includesAny(text, flag.keywords) {
			urgent = append(urgent, flag.id)
		}
	}

	required := make([]Category, 0)
	seenRequired := map[Category]struct{}{}
	for _, tag := range detected {
		for _, cat := range categoriesBySymptom[tag] {
			if _, dup := seenRequired[cat]; dup {
				continue
			}
			seenRequired[cat] = struct{}{}
			required = append(required, cat)
		}
	}

	searchTexts := make([]string, len(meds))
	for i, m := range meds {
		searchTexts[i] = medicineSearchText(m)
	}

	recommended := make([]KitRecommendation, 0)
	used := map[string]struct{}{}

	for _, tag := range detected {
		for _, cat := range categoriesBySymptom[tag] {
			markers := nameMarkersByCategory[cat]
			for i, m := range meds {
				if _, taken := used[m.ID]; taken {
					continue
				}
				if !includesAny(searchTexts[i], markers) {
					continue
				}
				used[m.ID] = struct{}{}
				recommended = append(recommended, KitRecommendation{
					MedicineID: m.ID,
					Name:       m.Name,
					ForSymptom: tag,
				})
				break
			}
		}
	}

	missing := make([]Category, 0)
	for _, cat := range required {
		markers := nameMarkersByCategory[cat]
		covered := false
		for i := range meds {
			if includesAny(searchTexts[i], markers) {
				covered = true
				break
			}
		}
		if !covered {
			missing = append(missing, cat)
		}
	}

	steps := make([]string, 0)
	seenSteps := map[string]struct{}{}
	for _, tag := range detected {
		for _, step := range careStepsBySymptom[lang][tag] {
			if _, dup := seenSteps[step]; dup {
				continue
			}
			seenSteps[step] = struct{}{}
			steps = append(steps, step)
		}
	}

	return Advice{
		DetectedSymptoms:   detected,
		UrgentFlags:        urgent,
		RecommendedFromKit: recommended,
		MissingCategories:  missing,
		SelfCareSteps:      steps,
		Summary:            summary(lang, len(detected), len(recommended)),
	}
}

func summary(lang Language, detected, recommended int) string {
	if detected == 0 {
		if lang == LanguageRU {
			return "Не удалось уверенно распознать симптомы. Добавьте больше деталей (длительность, температура, локализация боли)."
		}
		return "Could not confidently detect symptoms. Add more detail (duration, temperature, pain location)."
	}
	if lang == LanguageRU {
		return fmt.Sprintf("Обнаружено %d симптом(ов). В аптечке найдено %d подходящее(их) средство(в).", detected, recommended)
	}
	return fmt.Sprintf("Detected %d symptom pattern(s). Found %d possible option(s) in your kit.", detected, recommended)
}

func normalizeLanguage(lang Language) Language {
	if lang == LanguageRU {
		return LanguageRU
	}
	return LanguageEN
}

func normalize(input string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(strings.ToLower(input), " "))
}

func includesAny(text string, values []string) bool {
	for _, v := range values {
		if strings.Contains(text, v) {
			return true
		}
	}
	return false
}

func medicineSearchText(m medicines.Medicine) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{m.Name, m.Dosage, m.Notes} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return normalize(strings.Join(parts, " "))
}
