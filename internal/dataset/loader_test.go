package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"manufacturing_analytics/internal/models"
)

const header = "machine,timestamp,machine_status,temperature,vibration,humidity,pressure,energy_consumption,failure_type,maintenance_required,predicted_remaining_life\n"

const sampleRows = header +
	"M1,2024-01-01 02:00:00,Running,95,10,40,1010,120,Normal,No,500\n" +
	"M2,2024-01-01 08:30:00,Idle,50,80,42,1005,80,Normal,Yes,300\n" +
	"M3,2024-01-02 20:15:00,Failure,40,20,45,1000,60,Overheat,Yes,10\n"

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoader_LoadAndDerive(t *testing.T) {
	t.Parallel()

	path := writeTempCSV(t, sampleRows)
	ds, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Len() != 3 {
		t.Fatalf("want 3 records, got %d", ds.Len())
	}

	records := ds.Records()

	// Derived fields of the first record.
	r := records[0]
	if r.Hour != 2 {
		t.Errorf("hour: want 2, got %d", r.Hour)
	}
	if !r.Date.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date: got %v", r.Date)
	}

	// Day parts for hours 2, 8, 20.
	wantParts := []string{models.DayPartMadrugada, models.DayPartManha, models.DayPartNoite}
	for i, want := range wantParts {
		if records[i].DayPart != want {
			t.Errorf("record %d: want day part %q, got %q", i, want, records[i].DayPart)
		}
	}

	// maintenance_required normalized from Yes/No.
	if records[0].MaintenanceRequired || !records[1].MaintenanceRequired {
		t.Errorf("maintenance flags wrong: %v, %v", records[0].MaintenanceRequired, records[1].MaintenanceRequired)
	}

	info := ds.Info()
	if info.Rows != 3 || len(info.Machines) != 3 {
		t.Errorf("unexpected info: %+v", info)
	}
	if !info.DateFrom.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) ||
		!info.DateTo.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date span: got [%v, %v]", info.DateFrom, info.DateTo)
	}
}

func TestLoader_MemoizesPerPath(t *testing.T) {
	t.Parallel()

	path := writeTempCSV(t, sampleRows)
	loader := NewLoader()

	first, err := loader.Load(path)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}

	// Corrupt the file; the cached Dataset must be returned untouched.
	if err := os.WriteFile(path, []byte("garbage"), 0o600); err != nil {
		t.Fatalf("overwrite fixture: %v", err)
	}

	second, err := loader.Load(path)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if first != second {
		t.Fatal("expected the memoized Dataset handle on the second load")
	}
}

func TestLoader_ErrorKinds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		missing bool
		wantErr error
	}{
		{
			name:    "missing file",
			missing: true,
			wantErr: ErrLoad,
		},
		{
			name:    "missing required column",
			content: "machine,timestamp\nM1,2024-01-01 02:00:00\n",
			wantErr: ErrLoad,
		},
		{
			name:    "unparseable timestamp rejects whole load",
			content: header + "M1,not-a-time,Running,95,10,40,1010,120,Normal,No,500\n",
			wantErr: ErrParse,
		},
		{
			name:    "malformed numeric column",
			content: header + "M1,2024-01-01 02:00:00,Running,hot,10,40,1010,120,Normal,No,500\n",
			wantErr: ErrLoad,
		},
		{
			name:    "invalid maintenance flag",
			content: header + "M1,2024-01-01 02:00:00,Running,95,10,40,1010,120,Normal,maybe,500\n",
			wantErr: ErrLoad,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var path string
			if tc.missing {
				path = filepath.Join(t.TempDir(), "absent.csv")
			} else {
				path = writeTempCSV(t, tc.content)
			}
			ds, err := NewLoader().Load(path)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
			if ds != nil {
				t.Fatal("a failed load must not produce a partial Dataset")
			}
		})
	}
}

func TestDayPartForHour(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hour int
		want string
	}{
		{0, models.DayPartMadrugada},
		{5, models.DayPartMadrugada},
		{6, models.DayPartManha},
		{11, models.DayPartManha},
		{12, models.DayPartTarde},
		{17, models.DayPartTarde},
		{18, models.DayPartNoite},
		{23, models.DayPartNoite},
	}
	for _, tc := range cases {
		got, err := DayPartForHour(tc.hour)
		if err != nil {
			t.Fatalf("hour %d: unexpected error: %v", tc.hour, err)
		}
		if got != tc.want {
			t.Errorf("hour %d: want %q, got %q", tc.hour, tc.want, got)
		}
	}

	for _, hour := range []int{-1, 24, 100} {
		if _, err := DayPartForHour(hour); !errors.Is(err, ErrValidation) {
			t.Errorf("hour %d: want ErrValidation, got %v", hour, err)
		}
	}
}
