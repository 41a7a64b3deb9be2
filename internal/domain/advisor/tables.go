package advisor

// Tablas estáticas del asistente. Solo lectura después de init; el orden
// de los slices define el orden de detección y de asignación.

type SymptomTag string

const (
	SymptomFever      SymptomTag = "fever"
	SymptomHeadache   SymptomTag = "headache"
	SymptomSoreThroat SymptomTag = "sore_throat"
	SymptomCough      SymptomTag = "cough"
	SymptomRunnyNose  SymptomTag = "runny_nose"
	SymptomAllergy    SymptomTag = "allergy"
	SymptomNausea     SymptomTag = "nausea"
	SymptomDiarrhea   SymptomTag = "diarrhea"
	SymptomPain       SymptomTag = "pain"
	SymptomBurn       SymptomTag = "burn"
)

type Category string

const (
	CategoryAntipyretic   Category = "antipyretic"
	CategoryPainkiller    Category = "painkiller"
	CategoryCough         Category = "cough"
	CategoryThroat        Category = "throat"
	CategoryAntihistamine Category = "antihistamine"
	CategoryAntidiarrheal Category = "antidiarrheal"
	CategoryRehydration   Category = "rehydration"
	CategoryAntiemetic    Category = "antiemetic"
	CategoryBurnCare      Category = "burn_care"
)

// keywords en inglés y ruso se chequean a la vez, sin importar el idioma
// pedido para la respuesta.
var symptomKeywords = []struct {
	tag      SymptomTag
	keywords []string
}{
	{SymptomFever, []string{"fever", "temperature", "temp", "жар", "температур"}},
	{SymptomHeadache, []string{
		"headache", "migraine", "head hurts",
		"голов", "мигрен", "болит голова", "головная боль",
	}},
	{SymptomSoreThroat, []string{"sore throat", "throat", "горл", "ангин"}},
	{SymptomCough, []string{"cough", "кашл"}},
	{SymptomRunnyNose, []string{"runny", "nose", "snot", "насморк", "нос залож"}},
	{SymptomAllergy, []string{"allergy", "rash", "itch", "аллерг", "сып", "зуд"}},
	{SymptomNausea, []string{"nausea", "vomit", "тошн", "рвот"}},
	{SymptomDiarrhea, []string{"diarrhea", "loose stool", "понос", "диаре"}},
	{SymptomPain, []string{"pain", "ache", "бол", "болит", "ломит"}},
	{SymptomBurn, []string{"burn", "ожог"}},
}

var redFlags = []struct {
	id       string
	keywords []string
}{
	{"chest_pain", []string{"chest pain", "pressure in chest", "боль в груди", "давит в груди"}},
	{"breathing", []string{"shortness of breath", "hard to breathe", "дыхани", "задыха"}},
	{"neuro", []string{"fainted", "convulsion", "seizure", "потеря сознания", "судорог"}},
	{"blood", []string{"blood", "кровь"}},
	{"high_fever", []string{"40", "41", "очень высокая температура", "very high fever"}},
	{"pregnancy_child", []string{"pregnant", "pregnancy", "беремен", "infant", "newborn", "младен"}},
}

var categoriesBySymptom = map[SymptomTag][]Category{
	SymptomFever:      {CategoryAntipyretic, CategoryRehydration},
	SymptomHeadache:   {CategoryPainkiller},
	SymptomSoreThroat: {CategoryThroat, CategoryPainkiller},
	SymptomCough:      {CategoryCough, CategoryRehydration},
	SymptomRunnyNose:  {CategoryAntihistamine},
	SymptomAllergy:    {CategoryAntihistamine},
	SymptomNausea:     {CategoryAntiemetic, CategoryRehydration},
	SymptomDiarrhea:   {CategoryAntidiarrheal, CategoryRehydration},
	SymptomPain:       {CategoryPainkiller},
	SymptomBurn:       {CategoryBurnCare},
}

// markers son substrings buscados en name+dosage+notes del medicamento.
var nameMarkersByCategory = map[Category][]string{
	CategoryAntipyretic: {
		"paracetamol", "acetaminophen", "ibuprofen", "nurofen",
		"панадол", "парацетамол", "ацетаминофен", "ибупроф",
	},
	CategoryPainkiller: {
		"paracetamol", "acetaminophen", "ibuprofen", "nurofen",
		"ketorol", "diclofenac", "citramon",
		"парацетамол", "ибупроф", "нурофен", "кеторол", "цитрамон", "диклофен",
	},
	CategoryCough:         {"ambroxol", "bromhex", "acetylcyste", "ацц", "амброкс", "бромгекс"},
	CategoryThroat:        {"strepsils", "tantum", "hexoral", "хлоргекс", "гексорал"},
	CategoryAntihistamine: {"cetirizine", "loratadine", "suprastin", "цетир", "лоратад", "супраст"},
	CategoryAntidiarrheal: {"loperamide", "smecta", "enterosgel", "смекта", "энтеросгель"},
	CategoryRehydration:   {"rehydron", "ors", "регидрон"},
	CategoryAntiemetic:    {"ondansetron", "domperidone", "метоклоп", "мотилиум"},
	CategoryBurnCare:      {"panthenol", "burn", "пантенол"},
}

var careStepsBySymptom = map[Language]map[SymptomTag][]string{
	LanguageEN: {
		SymptomFever:      {"Rest and drink enough water.", "Track temperature every 4-6 hours."},
		SymptomHeadache:   {"Reduce light/noise and rest.", "Drink water and monitor pain progression."},
		SymptomSoreThroat: {"Use warm fluids.", "Avoid very hot/cold food and smoke."},
		SymptomCough:      {"Humidify air and stay hydrated.", "Watch for breathing difficulty."},
		SymptomRunnyNose:  {"Rinse nose with saline.", "Drink more fluids."},
		SymptomAllergy:    {"Stop contact with possible allergen.", "Monitor swelling and breathing."},
		SymptomNausea:     {"Small sips of water or oral rehydration.", "Avoid heavy food for several hours."},
		SymptomDiarrhea:   {"Oral rehydration is critical.", "Watch for dehydration signs."},
		SymptomPain:       {"Reduce physical load and rest.", "Avoid combining painkillers without guidance."},
		SymptomBurn:       {"Cool affected area with water for 10-20 minutes.", "Do not puncture blisters."},
	},
	LanguageRU: {
		SymptomFever:      {"Отдыхайте и пейте больше воды.", "Контролируйте температуру каждые 4-6 часов."},
		SymptomHeadache:   {"Уменьшите свет и шум, отдохните.", "Пейте воду и наблюдайте за динамикой боли."},
		SymptomSoreThroat: {"Пейте тёплую жидкость.", "Избегайте очень горячей или холодной еды и дыма."},
		SymptomCough:      {"Увлажняйте воздух и пейте больше жидкости.", "Следите за появлением одышки."},
		SymptomRunnyNose:  {"Промывайте нос солевым раствором.", "Увеличьте потребление жидкости."},
		SymptomAllergy:    {"Прекратите контакт с возможным аллергеном.", "Следите за отёком и дыханием."},
		SymptomNausea:     {"Пейте воду маленькими глотками.", "Избегайте тяжёлой пищи несколько часов."},
		SymptomDiarrhea:   {"Главное — регидратация.", "Следите за признаками обезвоживания."},
		SymptomPain:       {"Снизьте нагрузку и отдохните.", "Не комбинируйте обезболивающие без консультации."},
		SymptomBurn:       {"Охлаждайте место ожога водой 10-20 минут.", "Не вскрывайте пузыри."},
	},
}
