package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"go-pricing-sim/internal/model"
)

// Justification builds the ordered argumentaire for a computed result.
// Returns nil (no justification available yet) when the internal cost
// is zero; otherwise the sentence list varies only with which optional
// inputs are present (project category, non-neutral coefficient,
// positive margin).
func Justification(res Result, clientType *model.ClientType, projectType *model.ProjectType, rates []model.DailyRate, units map[uuid.UUID]float64, mode Mode) []string {
	if res.InternalCost == 0 {
		return nil
	}

	var sentences []string

	if line := rolesSentence(rates, units, mode); line != "" {
		sentences = append(sentences, line)
	}
	if projectType != nil {
		sentences = append(sentences, complexitySentence(projectType))
	}
	if res.Coefficient != 1 {
		sentences = append(sentences, coefficientSentence(res.Coefficient, clientType))
	}

	totalDays := DaysOf(res.TotalUnits, mode)
	sentences = append(sentences, fmt.Sprintf(
		"L'investissement total représente %s %s de travail, soit un coût interne de %s.",
		formatNumber(totalDays), dayWord(totalDays), FormatFCFA(res.InternalCost)))

	if res.MarginPercent > 0 {
		sentences = append(sentences, marginSentence(res.MarginPercent))
	}

	sentences = append(sentences,
		"Ce tarif reflète l'équilibre entre la qualité d'exécution, l'expertise mobilisée et la valeur créée pour votre activité.")

	return sentences
}

func rolesSentence(rates []model.DailyRate, units map[uuid.UUID]float64, mode Mode) string {
	var parts []string
	for _, rate := range rates {
		if !rate.IsActive {
			continue
		}
		u := units[rate.ID]
		if u <= 0 {
			continue
		}
		days := DaysOf(u, mode)
		parts = append(parts, fmt.Sprintf("%s (%s %s)", rate.RoleName, formatNumber(days), dayWord(days)))
	}
	if len(parts) == 0 {
		return ""
	}
	label := "profil"
	if len(parts) > 1 {
		label = "profils"
	}
	return fmt.Sprintf("Cette proposition mobilise %d %s : %s.", len(parts), label, strings.Join(parts, ", "))
}

func complexitySentence(projectType *model.ProjectType) string {
	switch projectType.ComplexityLevel {
	case model.ComplexityHigh:
		return fmt.Sprintf("Le projet « %s » présente une complexité élevée qui exige une expertise pointue et un pilotage renforcé.", projectType.Name)
	case model.ComplexityMedium:
		return fmt.Sprintf("Le projet « %s » présente une complexité intermédiaire nécessitant une coordination soutenue entre les équipes.", projectType.Name)
	default:
		return fmt.Sprintf("Le projet « %s » s'inscrit dans un périmètre maîtrisé, permettant une exécution rapide et efficace.", projectType.Name)
	}
}

func coefficientSentence(coefficient float64, clientType *model.ClientType) string {
	name := "ce client"
	if clientType != nil {
		name = "un client « " + clientType.Name + " »"
	}
	if coefficient > 1 {
		return fmt.Sprintf("Le positionnement pour %s justifie un coefficient de %s, reflétant le niveau d'exigence et d'engagement attendu.",
			name, formatNumber(coefficient))
	}
	return fmt.Sprintf("Un coefficient préférentiel de %s est appliqué afin d'accompagner %s dans la durée.",
		formatNumber(coefficient), name)
}

func marginSentence(marginPercent float64) string {
	switch {
	case marginPercent >= 50:
		return fmt.Sprintf("La marge de %s%% garantit une rentabilité confortable et couvre les aléas du projet.", formatNumber(marginPercent))
	case marginPercent >= 40:
		return fmt.Sprintf("La marge de %s%% assure une rentabilité saine, conforme aux standards de l'agence.", formatNumber(marginPercent))
	default:
		return fmt.Sprintf("La marge de %s%% reste volontairement mesurée afin de proposer un tarif compétitif.", formatNumber(marginPercent))
	}
}

// FormatFCFA renders a monetary amount the way the agency displays it:
// rounded to the unit, space-grouped thousands, FCFA suffix.
func FormatFCFA(value float64) string {
	negative := value < 0
	if negative {
		value = -value
	}
	digits := strconv.FormatInt(int64(value+0.5), 10)
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(digits[i : i+3])
	}
	out := b.String()
	if negative {
		out = "-" + out
	}
	return out + " FCFA"
}

// formatNumber renders a quantity in French decimal notation, dropping
// trailing zeros (10, 2,5, 0,75).
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return strings.ReplaceAll(s, ".", ",")
}

func dayWord(days float64) string {
	if days > 1 {
		return "jours"
	}
	return "jour"
}
