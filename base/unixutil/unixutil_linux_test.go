package unixutil_test

import (
	"testing"

	"example.com/tinythread/base/unixutil"
)

func TestTimespecFromNsec(t *testing.T) {
	tests := []struct {
		name     string
		nsec     int64
		wantSec  int64
		wantNsec int64
	}{
		{"Zero", 0, 0, 0},
		{"Sub-second", 500_000_000, 0, 500_000_000},
		{"One second", 1_000_000_000, 1, 0},
		{"Mixed", 2_000_000_123, 2, 123},
		{"Negative clamps to zero", -5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := unixutil.TimespecFromNsec(tt.nsec)
			if int64(ts.Sec) != tt.wantSec || int64(ts.Nsec) != tt.wantNsec {
				t.Errorf("TimespecFromNsec(%d) = {%d, %d}; want {%d, %d}",
					tt.nsec, ts.Sec, ts.Nsec, tt.wantSec, tt.wantNsec)
			}
		})
	}
}

func TestNsecFromTimespec(t *testing.T) {
	for _, nsec := range []int64{0, 1, 999_999_999, 1_000_000_000, 3_141_592_653} {
		got := unixutil.NsecFromTimespec(unixutil.TimespecFromNsec(nsec))
		if got != nsec {
			t.Errorf("NsecFromTimespec(TimespecFromNsec(%d)) = %d; want %d", nsec, got, nsec)
		}
	}
}
