package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"busdepot/internal/domain/models"
	"busdepot/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable record cards and trip sheets.
type DocsService struct {
	Records *RecordService
	now     func() time.Time
}

func NewDocsService(records *RecordService) *DocsService {
	return &DocsService{Records: records, now: time.Now}
}

func (s *DocsService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *DocsService) BusCard(ctx context.Context, requestID, busID string) ([]byte, string, error) {
	bus, err := s.Records.LookupBus(ctx, requestID, busID)
	if err != nil {
		return nil, "", err
	}
	lines := []string{
		fmt.Sprintf("Bus ID      : %s", utils.Safe(bus.BusID, "-")),
		fmt.Sprintf("Depot       : %s", utils.Safe(bus.Depo, "-")),
		fmt.Sprintf("Seats       : %d", bus.NoOfSeats),
		fmt.Sprintf("Driver      : %s", utils.Safe(bus.DriverName, "-")),
		fmt.Sprintf("Owner       : %s", utils.Safe(bus.OwnerName, "-")),
	}
	pdf, err := s.buildCardPDF("BUS RECORD", lines)
	if err != nil {
		utils.LogError(requestID, "docs", "bus_card", err)
		return nil, "", err
	}
	return pdf, fmt.Sprintf("BUS_%s.pdf", utils.SafeFilenamePart(bus.BusID)), nil
}

func (s *DocsService) DriverCard(ctx context.Context, requestID, name string) ([]byte, string, error) {
	driver, err := s.Records.LookupDriver(ctx, requestID, name)
	if err != nil {
		return nil, "", err
	}
	lines := []string{
		fmt.Sprintf("Name        : %s", utils.Safe(driver.DriverName, "-")),
		fmt.Sprintf("License No  : %d", driver.LicenseNo),
		fmt.Sprintf("Phone       : %d", driver.Phone),
		fmt.Sprintf("Age         : %d", driver.Age),
		fmt.Sprintf("Experience  : %d years", driver.Experience),
	}
	pdf, err := s.buildCardPDF("DRIVER RECORD", lines)
	if err != nil {
		utils.LogError(requestID, "docs", "driver_card", err)
		return nil, "", err
	}
	return pdf, fmt.Sprintf("DRIVER_%s.pdf", utils.SafeFilenamePart(driver.DriverName)), nil
}

// TripSheet lists every trip the lookup returns for the route, one row per
// trip, using the same match mode as the lookup page.
func (s *DocsService) TripSheet(ctx context.Context, requestID, to, fro string) ([]byte, string, error) {
	trips, err := s.Records.LookupTrips(ctx, requestID, to, fro)
	if err != nil {
		return nil, "", err
	}
	pdf, err := s.buildTripSheetPDF(to, fro, trips)
	if err != nil {
		utils.LogError(requestID, "docs", "trip_sheet", err)
		return nil, "", err
	}
	name := fmt.Sprintf("TRIPS_%s_%s.pdf", utils.SafeFilenamePart(fro), utils.SafeFilenamePart(to))
	return pdf, name, nil
}

func (s *DocsService) buildCardPDF(title string, lines []string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Courier", "", 12)
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.Cell(0, 6, "Printed "+utils.FormatStamp(s.clock()))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *DocsService) buildTripSheetPDF(to, fro string, trips []models.Trip) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Trip Sheet", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRIP SHEET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Route   : %s -> %s", utils.Safe(fro, "-"), utils.Safe(to, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Printed : "+utils.FormatStamp(s.clock()))
	pdf.Ln(10)

	headers := []string{"Trip No", "Date", "Bus No", "From", "To", "Seats"}
	widths := []float64{30, 45, 30, 60, 60, 30}

	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, t := range trips {
		row := []string{
			strconv.Itoa(t.TripNo),
			utils.Safe(t.Date, "-"),
			strconv.Itoa(t.BusNo),
			utils.Safe(t.Fro, "-"),
			utils.Safe(t.To, "-"),
			strconv.Itoa(t.NoOfSeats),
		}
		for i, v := range row {
			pdf.CellFormat(widths[i], 7, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
