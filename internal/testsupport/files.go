package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// Fixture file names match the bundled default configuration.
const (
	NetflixFile     = "netflix_titles.csv"
	DisneyFile      = "disney_plus_titles.csv"
	OscarFile       = "oscar_award.csv"
	GoldenGlobeFile = "golden_globe_award.csv"
)

// NetflixCSV is a small Netflix catalog. Roma and The Crown won Golden Globe
// top awards; Roma, The Irishman, and Klaus are Oscar nominees only.
const NetflixCSV = `show_id,type,title,release_year
s1,Movie,Roma,2018
s2,Movie,The Irishman,2019
s3,Movie,Marriage Story,2019
s4,TV Show,The Crown,2016
s5,Movie,Klaus,2019
`

// DisneyCSV is a small Disney+ catalog. Soul won under both sources and Coco
// under the Academy Awards only.
const DisneyCSV = `show_id,type,title,release_year
d1,Movie,Soul,2020
d2,Movie,Onward,2020
d3,Movie,Coco (2017),2017
d4,TV Show,The Mandalorian,2019
`

// OscarTSV is a tab-separated Academy Awards extract. Parasite carries a
// malformed winner cell; two rows use categories outside the mapping.
const OscarTSV = "Film\tCategory\tWinner\n" +
	"Roma\tBEST PICTURE\t\n" +
	"The Irishman\tBEST PICTURE\t\n" +
	"Green Book\tBEST PICTURE\tTrue\n" +
	"Soul\tANIMATED FEATURE FILM\tTrue\n" +
	"Onward\tANIMATED FEATURE FILM\t\n" +
	"Coco\tANIMATED FEATURE FILM\tTrue\n" +
	"Klaus\tANIMATED FEATURE FILM\t\n" +
	"Marriage Story\tACTRESS IN A SUPPORTING ROLE\tTrue\n" +
	"Roma\tDIRECTING\tTrue\n" +
	"Parasite\tBEST PICTURE\tmaybe\n"

// GoldenGlobeCSV is a Golden Globes extract. Klaus has no winner value and is
// excluded.
const GoldenGlobeCSV = `title,award,winner
The Crown,Best Television Series - Drama,True
The Mandalorian,Best Television Series - Drama,False
Soul,Best Motion Picture - Animated,True
Onward,Best Motion Picture - Animated,False
Roma,Best Motion Picture â€“ Non-English Language,True
Klaus,Best Motion Picture - Animated,
`

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
