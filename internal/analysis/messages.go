package analysis

import "golang.org/x/text/language"

// Messages is the text catalog used for tier labels and recommendations.
// Percent templates take a single float formatted with one decimal.
type Messages struct {
	Tag        language.Tag
	TierLabels map[Tier]string

	HighCritical   string
	HighResources  string
	HighMonitoring string
	HighOptimize   string

	MediumContribution string
	MediumReview       string
	MediumPromote      string

	LowImpact        string
	LowSimplify      string
	LowProportionate string

	TopShare string
}

// Label returns the display label of a tier.
func (m *Messages) Label(t Tier) string {
	if l, ok := m.TierLabels[t]; ok {
		return l
	}
	return t.String()
}

// Spanish is the default catalog.
var Spanish = &Messages{
	Tag: language.Spanish,
	TierLabels: map[Tier]string{
		TierHigh:   "Alta Prioridad",
		TierMedium: "Media Prioridad",
		TierLow:    "Baja Prioridad",
	},
	HighCritical:   "Elemento crítico: aporta el %.1f%% del valor total",
	HighResources:  "Asignar recursos de forma inmediata",
	HighMonitoring: "Mantener monitoreo continuo de su desempeño",
	HighOptimize:   "Optimizar para maximizar el retorno",

	MediumContribution: "Aporta el %.1f%% del valor total",
	MediumReview:       "Revisar periódicamente su desempeño",
	MediumPromote:      "Evaluar si puede pasar a Alta Prioridad",

	LowImpact:        "Impacto limitado: aporta el %.1f%% del valor total",
	LowSimplify:      "Considerar simplificar o automatizar",
	LowProportionate: "Revisar que los recursos asignados sean proporcionales a su impacto",

	TopShare: "⭐ Forma parte del 20% superior que concentra el mayor valor",
}

// English mirrors the Spanish catalog.
var English = &Messages{
	Tag: language.English,
	TierLabels: map[Tier]string{
		TierHigh:   "High Priority",
		TierMedium: "Medium Priority",
		TierLow:    "Low Priority",
	},
	HighCritical:   "Critical item: contributes %.1f%% of total value",
	HighResources:  "Allocate resources immediately",
	HighMonitoring: "Monitor its performance continuously",
	HighOptimize:   "Optimize to maximize return",

	MediumContribution: "Contributes %.1f%% of total value",
	MediumReview:       "Review its performance periodically",
	MediumPromote:      "Evaluate whether it can move up to High Priority",

	LowImpact:        "Limited impact: contributes %.1f%% of total value",
	LowSimplify:      "Consider simplifying or automating",
	LowProportionate: "Check that allocated resources are proportional to its impact",

	TopShare: "⭐ Part of the top 20% that concentrates the most value",
}

// catalogs is ordered like the matcher's supported tags; the first is the fallback.
var (
	catalogs = []*Messages{Spanish, English}
	matcher  = language.NewMatcher([]language.Tag{language.Spanish, language.English})
)

// MessagesFor picks the catalog closest to a BCP 47 tag or Accept-Language
// value. Unknown or empty input yields Spanish.
func MessagesFor(lang string) *Messages {
	if lang == "" {
		return Spanish
	}
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(tags) == 0 {
		return Spanish
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(catalogs) {
		return Spanish
	}
	return catalogs[idx]
}
