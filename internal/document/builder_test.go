package document

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NourJadiri/invox-app/internal/config"
	"github.com/NourJadiri/invox-app/internal/models"
)

func testInvoiceConfig() config.InvoiceConfig {
	return config.InvoiceConfig{
		Issuer: config.PartyConfig{
			Name:    "Jean Dupont",
			Siret:   "12345678900000",
			Address: "1 Rue de la République",
			City:    "69001, Lyon",
			Phone:   "06 00 00 00 00",
		},
		Service: "Cours particuliers",
		VATNote: "TVA non applicable, art. 293 B du CGI",
	}
}

func TestBuildHTML(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	title := "Maths"

	doc := Build(Config{
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 30),
		Lessons: []models.Lesson{
			{
				ID:        "l1",
				Title:     &title,
				Start:     time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
				End:       time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC),
				Price:     ptrFloat(40),
				StudentID: "s1",
			},
		},
		Students:           []models.Student{{ID: "s1", FirstName: "Alice", LastName: "Martin"}},
		SelectedStudentIDs: []string{"s1"},
		Number:             12,
		Date:               time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	})

	html, err := BuildHTML(doc, testInvoiceConfig())
	require.NoError(t, err)

	assert.Contains(t, html, "Jean Dupont")
	assert.Contains(t, html, "FACTURER À")
	assert.Contains(t, html, "N° FACTURE 12")
	assert.Contains(t, html, "1 avril 2025")
	assert.Contains(t, html, "Leçons du 01 mars 2025 au 31 mars 2025")
	assert.Contains(t, html, "Alice Martin")
	assert.Contains(t, html, "Maths")
	assert.Contains(t, html, "10/03/2025 14:00")
	assert.Contains(t, html, "60,00 €")
	assert.Contains(t, html, "Sous-total pour Alice")
	assert.Contains(t, html, "1 élève")
	assert.Contains(t, html, "TVA non applicable")
}

func TestBuildHTMLZeroAmountsRenderAsDash(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	doc := Build(Config{
		Lessons: []models.Lesson{
			{ID: "l1", Start: start, End: start.Add(time.Hour), StudentID: "s1"},
		},
		Students:           []models.Student{{ID: "s1", FirstName: "Alice"}},
		SelectedStudentIDs: []string{"s1"},
		Number:             1,
		Date:               start,
	})

	html, err := BuildHTML(doc, testInvoiceConfig())
	require.NoError(t, err)

	// no price: rate and line total show as a dash
	assert.Contains(t, html, ">-</td>")
	// the untitled lesson falls back to a generic label
	assert.Contains(t, html, "Leçon")
}

func TestBuildHTMLWithoutNumber(t *testing.T) {
	doc := Build(Config{Date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)})

	html, err := BuildHTML(doc, testInvoiceConfig())
	require.NoError(t, err)

	assert.Contains(t, html, "N° FACTURE —")
	assert.Contains(t, html, "0 élèves")
}

func TestBuildHTMLPluralizesStudents(t *testing.T) {
	doc := Build(Config{
		Students:           []models.Student{{ID: "s1", FirstName: "A"}, {ID: "s2", FirstName: "B"}},
		SelectedStudentIDs: []string{"s1", "s2"},
		Date:               time.Now(),
	})

	html, err := BuildHTML(doc, testInvoiceConfig())
	require.NoError(t, err)

	assert.Contains(t, html, "2 élèves")
	assert.Equal(t, 2, strings.Count(html, `class="chip"`))
}
