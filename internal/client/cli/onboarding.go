package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/bookshelf/internal/client/genres"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
)

// Onboarding asks gender, age and favorite genres, keeps the answers in the
// session scratch buffer and marks onboarding as done. Blank answers skip a
// question.
func (a *App) Onboarding(context.Context) error {
	var answers models.TempOnboardingData

	raw, err := getSimpleText(a.reader, "Gender (male, female, not_specified; empty to skip)", a.out)
	if err != nil {
		return err
	}
	if raw != "" {
		g, err := models.ParseGender(raw)
		if err != nil {
			printlnFn("Error:", err)
			return nil
		}
		answers.Gender = &g
	}

	raw, err = getSimpleText(a.reader, "Age (empty to skip)", a.out)
	if err != nil {
		return err
	}
	if raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil || age < 0 {
			printlnFn("Error: age must be a whole number")
			return nil
		}
		if err := a.config.Rules().Age(age); err != nil {
			printlnFn("Error:", err)
			return nil
		}
		answers.Age = &age
		answers.AgeRange = ageRange(age)
	}

	labels := genres.Labels()
	for i, l := range labels {
		printlnFn(fmt.Sprintf("%2d. %s", i+1, l))
	}
	picks, err := getList(a.reader, "Favorite genres by number or name", a.out)
	if err != nil {
		return err
	}
	chosen, unknown := resolveGenres(picks, labels)
	for _, u := range unknown {
		printlnFn("Skipping unknown genre:", u)
	}
	answers.FavoriteGenres = chosen

	a.store.UpdateTempUserData(answers)
	a.store.CompleteOnboarding()
	printlnFn("Onboarding saved. Use 'register' to create your account.")
	return nil
}

// resolveGenres maps numbers (1-based into labels) and names, including
// localized aliases, to canonical labels.
func resolveGenres(picks, labels []string) (chosen, unknown []string) {
	chosen = make([]string, 0, len(picks))
	for _, p := range picks {
		if n, err := strconv.Atoi(p); err == nil {
			if n >= 1 && n <= len(labels) {
				chosen = append(chosen, labels[n-1])
			} else {
				unknown = append(unknown, p)
			}
			continue
		}
		k, ok := genres.KeyForLabel(p)
		if !ok {
			unknown = append(unknown, p)
			continue
		}
		label, _ := genres.LabelForKey(k)
		chosen = append(chosen, label)
	}
	return models.UniqueGenres(chosen), unknown
}

// ageRange buckets an age the way the onboarding screen offers ranges.
func ageRange(age int) string {
	switch {
	case age < 14:
		return ""
	case age <= 17:
		return "14-17"
	case age <= 24:
		return "18-24"
	case age >= 50:
		return "50+"
	}
	lo := age - (age % 5)
	return fmt.Sprintf("%d-%d", lo, lo+4)
}
