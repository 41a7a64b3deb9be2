package advisor

import (
	"testing"

	"home-aidkit/internal/domain/medicines"
)

func kitMed(id, name string) medicines.Medicine {
	return medicines.Medicine{ID: id, Name: name}
}

func hasTag(tags []SymptomTag, want SymptomTag) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

func TestBuildAdvice_DetectsEnglishSymptoms(t *testing.T) {
	a := BuildAdvice("I have fever 38 and a sore throat", nil, LanguageEN)

	if len(a.DetectedSymptoms) != 2 {
		t.Fatalf("expected 2 symptoms, got %v", a.DetectedSymptoms)
	}
	if a.DetectedSymptoms[0] != SymptomFever || a.DetectedSymptoms[1] != SymptomSoreThroat {
		t.Fatalf("expected [fever sore_throat] in table order, got %v", a.DetectedSymptoms)
	}
	if len(a.UrgentFlags) != 0 {
		t.Fatalf("expected no red flags, got %v", a.UrgentFlags)
	}
}

func TestBuildAdvice_DetectsRussianSymptoms(t *testing.T) {
	a := BuildAdvice("высокая температура и горло", nil, LanguageRU)

	if !hasTag(a.DetectedSymptoms, SymptomFever) || !hasTag(a.DetectedSymptoms, SymptomSoreThroat) {
		t.Fatalf("expected fever and sore_throat, got %v", a.DetectedSymptoms)
	}
	if len(a.SelfCareSteps) == 0 || a.SelfCareSteps[0] != "Отдыхайте и пейте больше воды." {
		t.Fatalf("expected russian care steps, got %v", a.SelfCareSteps)
	}
}

func TestBuildAdvice_RedFlagChestPain(t *testing.T) {
	a := BuildAdvice("strong chest pain since morning", nil, LanguageEN)

	if len(a.UrgentFlags) != 1 || a.UrgentFlags[0] != "chest_pain" {
		t.Fatalf("expected chest_pain red flag, got %v", a.UrgentFlags)
	}
	// "pain" también detecta el síntoma genérico; la bandera no lo suprime
	if !hasTag(a.DetectedSymptoms, SymptomPain) {
		t.Fatalf("expected pain symptom alongside the flag, got %v", a.DetectedSymptoms)
	}
}

func TestBuildAdvice_AllocationIsExclusive_CoverageIsNot(t *testing.T) {
	kit := []medicines.Medicine{kitMed("m1", "Ibuprofen 200mg")}

	a := BuildAdvice("fever and headache", kit, LanguageEN)

	// un medicamento se asigna a un solo slot: fever (primero en orden de tabla)
	if len(a.RecommendedFromKit) != 1 {
		t.Fatalf("expected 1 recommendation, got %v", a.RecommendedFromKit)
	}
	rec := a.RecommendedFromKit[0]
	if rec.MedicineID != "m1" || rec.ForSymptom != SymptomFever {
		t.Fatalf("expected m1 allocated to fever, got %+v", rec)
	}

	// pero painkiller cuenta como cubierto porque el mismo ibuprofeno matchea
	for _, cat := range a.MissingCategories {
		if cat == CategoryPainkiller {
			t.Fatalf("painkiller should be covered by the allocated medicine: %v", a.MissingCategories)
		}
	}
	// rehydration sí falta: no hay nada que matchee
	found := false
	for _, cat := range a.MissingCategories {
		if cat == CategoryRehydration {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected rehydration missing, got %v", a.MissingCategories)
	}
}

func TestBuildAdvice_MatchesMedicineNotesToo(t *testing.T) {
	kit := []medicines.Medicine{
		{ID: "m1", Name: "Generic tablets", Notes: "contains paracetamol"},
	}

	a := BuildAdvice("fever", kit, LanguageEN)

	if len(a.RecommendedFromKit) != 1 || a.RecommendedFromKit[0].MedicineID != "m1" {
		t.Fatalf("expected match via notes, got %v", a.RecommendedFromKit)
	}
}

func TestBuildAdvice_NoSymptoms(t *testing.T) {
	a := BuildAdvice("xyz", nil, LanguageEN)

	if len(a.DetectedSymptoms) != 0 {
		t.Fatalf("expected no symptoms, got %v", a.DetectedSymptoms)
	}
	want := "Could not confidently detect symptoms. Add more detail (duration, temperature, pain location)."
	if a.Summary != want {
		t.Fatalf("unexpected summary: %q", a.Summary)
	}
}

func TestBuildAdvice_SummaryCountsRU(t *testing.T) {
	a := BuildAdvice("сильно кашляю", nil, LanguageRU)

	if !hasTag(a.DetectedSymptoms, SymptomCough) {
		t.Fatalf("expected cough, got %v", a.DetectedSymptoms)
	}
	want := "Обнаружено 1 симптом(ов). В аптечке найдено 0 подходящее(их) средство(в)."
	if a.Summary != want {
		t.Fatalf("unexpected summary: %q", a.Summary)
	}
}

func TestBuildAdvice_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	a := BuildAdvice("fever", nil, Language("de"))

	want := "Detected 1 symptom pattern(s). Found 0 possible option(s) in your kit."
	if a.Summary != want {
		t.Fatalf("unexpected summary: %q", a.Summary)
	}
}
