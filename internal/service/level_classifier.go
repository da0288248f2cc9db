package service

import (
	"regexp"
	"strings"

	"github.com/noah-isme/boleta-api/internal/models"
)

// Classifier reasons surfaced to the UI. Both are warnings asking for a
// manual selection, never errors.
const (
	ReasonTagMatch          = "nivel tomado de la etiqueta del salón"
	ReasonPatternMatch      = "nivel inferido del nombre del salón"
	ReasonSalonSinNivel     = "salón sin nivel automático, seleccione el nivel manualmente"
	ReasonSalonNoDisponible = "no se pudo determinar el salón, seleccione el nivel manualmente"
)

// LevelSuggestion is the classifier output for a classroom display name.
type LevelSuggestion struct {
	Level      models.AcademicLevel `json:"level,omitempty"`
	Determined bool                 `json:"determined"`
	Reason     string               `json:"reason"`
}

// tagPattern matches an authoritative leading "[X] rest" marker.
var tagPattern = regexp.MustCompile(`^\[([^\]]+)\]`)

type levelMatcher struct {
	level   models.AcademicLevel
	pattern *regexp.Regexp
}

// Matchers run in order; the first hit wins. Early-childhood rooms are
// checked before primary grades so "sala 2" never falls through to the
// bare-digit grade patterns.
var levelMatchers = []levelMatcher{
	{models.LevelSala1, regexp.MustCompile(`(?:sala|nivel)\s*(?:de\s*)?(?:1|i|uno)\b`)},
	{models.LevelSala2, regexp.MustCompile(`(?:sala|nivel)\s*(?:de\s*)?(?:2|ii|dos)\b`)},
	{models.LevelSala3, regexp.MustCompile(`(?:sala|nivel)\s*(?:de\s*)?(?:3|iii|tres)\b`)},
	{models.LevelPrimerGrado, regexp.MustCompile(`(?:\b(?:primero|primer|1er|1ro)\b|\b1\b|grado\s*1\b)`)},
	{models.LevelSegundoGrado, regexp.MustCompile(`(?:\b(?:segundo|2do)\b|\b2\b|grado\s*2\b)`)},
	{models.LevelTercerGrado, regexp.MustCompile(`(?:\b(?:tercero|tercer|3er|3ro)\b|\b3\b|grado\s*3\b)`)},
	{models.LevelCuartoGrado, regexp.MustCompile(`(?:\b(?:cuarto|4to)\b|\b4\b|grado\s*4\b)`)},
	{models.LevelQuintoGrado, regexp.MustCompile(`(?:\b(?:quinto|5to)\b|\b5\b|grado\s*5\b)`)},
	{models.LevelSextoGrado, regexp.MustCompile(`(?:\b(?:sexto|6to)\b|\b6\b|grado\s*6\b)`)},
}

var diacriticReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u",
	"°", "", "º", "",
)

// ClassifyLevel proposes an academic level from a classroom display name.
// A leading bracketed tag is authoritative and returned verbatim, skipping
// every heuristic. Pure function of the input.
func ClassifyLevel(salon string) LevelSuggestion {
	trimmed := strings.TrimSpace(salon)
	if trimmed == "" {
		return LevelSuggestion{Reason: ReasonSalonNoDisponible}
	}

	if m := tagPattern.FindStringSubmatch(trimmed); m != nil {
		return LevelSuggestion{
			Level:      models.AcademicLevel(m[1]),
			Determined: true,
			Reason:     ReasonTagMatch,
		}
	}

	normalized := diacriticReplacer.Replace(strings.ToLower(trimmed))
	for _, matcher := range levelMatchers {
		if matcher.pattern.MatchString(normalized) {
			return LevelSuggestion{
				Level:      matcher.level,
				Determined: true,
				Reason:     ReasonPatternMatch,
			}
		}
	}

	return LevelSuggestion{Reason: ReasonSalonSinNivel}
}
