package analytics

import (
	"bytes"
	"testing"

	"github.com/skander-fourati/zawali/internal/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderExpensesChart(t *testing.T) {
	points := []models.ChartPoint{
		{Label: "Jan 2024", Amount: 420.50},
		{Label: "Feb 2024", Amount: 380.00},
		{Label: "Mar 2024", Amount: 510.25},
	}

	png, err := RenderExpensesChart(points)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestRenderExpensesChartTooFewPoints(t *testing.T) {
	if _, err := RenderExpensesChart(nil); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := RenderExpensesChart([]models.ChartPoint{{Label: "Jan 2024", Amount: 1}}); err == nil {
		t.Error("expected error for a single point")
	}
}

func TestRenderExpensesChartBadLabel(t *testing.T) {
	points := []models.ChartPoint{
		{Label: "2024-01", Amount: 1},
		{Label: "2024-02", Amount: 2},
	}
	if _, err := RenderExpensesChart(points); err == nil {
		t.Error("expected error for non-display labels")
	}
}
