package roster_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/adapters/roster"
	. "github.com/smartystreets/goconvey/convey"
)

const sampleCSV = `id,name,specialization,experience,rating,languages,certifications,phone,email
shubham,Shubham Rao,Sprint,8 years,4.6,Hindi; English,World Athletics L2,+91-900,shubham@example.org
arjun, Arjun Mehta ,Sprint,,4.8,English,,,
`

func TestParseCSV(t *testing.T) {
	Convey("Given a roster CSV", t, func() {
		Convey("When every row is valid", func() {
			coaches, err := roster.ParseCSV(strings.NewReader(sampleCSV))

			Convey("Then each row becomes a coach", func() {
				So(err, ShouldBeNil)
				So(coaches, ShouldHaveLength, 2)
				So(coaches[0].ID, ShouldEqual, "shubham")
				So(coaches[0].Languages, ShouldResemble, []string{"Hindi", "English"})
				So(coaches[0].Contact.Email, ShouldEqual, "shubham@example.org")
				So(coaches[0].Rating, ShouldEqual, 4.6)
				So(coaches[1].Name, ShouldEqual, "Arjun Mehta")
				So(coaches[1].Certifications, ShouldBeNil)
			})
		})

		Convey("When only the id column is present", func() {
			coaches, err := roster.ParseCSV(strings.NewReader("ID\nmeera\n"))

			So(err, ShouldBeNil)
			So(coaches, ShouldHaveLength, 1)
			So(coaches[0].ID, ShouldEqual, "meera")
		})

		Convey("When the input is malformed", func() {
			cases := map[string]string{
				"no data rows":   "id,name\n",
				"no id column":   "name\nMeera\n",
				"blank id":       "id,name\n,Meera\n",
				"duplicate id":   "id\nmeera\nmeera\n",
				"rating too big": "id,rating\nmeera,7\n",
				"bad rating":     "id,rating\nmeera,high\n",
			}
			for name, input := range cases {
				_, err := roster.ParseCSV(strings.NewReader(input))
				Convey("Then "+name+" is rejected", func() {
					So(errors.Is(err, roster.ErrInvalidRoster), ShouldBeTrue)
				})
			}
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given roster files on disk", t, func() {
		dir := t.TempDir()

		Convey("A .yaml file is read as YAML", func() {
			path := filepath.Join(dir, "roster.yaml")
			So(os.WriteFile(path, []byte("coaches:\n  - id: meera\n    name: Meera\n    rating: 4.1\n"), 0o600), ShouldBeNil)

			coaches, err := roster.LoadFile(path)
			So(err, ShouldBeNil)
			So(coaches, ShouldHaveLength, 1)
			So(coaches[0].Name, ShouldEqual, "Meera")
		})

		Convey("A YAML coach without id is rejected", func() {
			path := filepath.Join(dir, "roster.yml")
			So(os.WriteFile(path, []byte("coaches:\n  - name: Nobody\n"), 0o600), ShouldBeNil)

			_, err := roster.LoadFile(path)
			So(errors.Is(err, roster.ErrInvalidRoster), ShouldBeTrue)
		})

		Convey("Any other extension is read as CSV", func() {
			path := filepath.Join(dir, "roster.csv")
			So(os.WriteFile(path, []byte(sampleCSV), 0o600), ShouldBeNil)

			coaches, err := roster.LoadFile(path)
			So(err, ShouldBeNil)
			So(coaches, ShouldHaveLength, 2)
		})

		Convey("A missing file is an error", func() {
			_, err := roster.LoadFile(filepath.Join(dir, "missing.csv"))
			So(err, ShouldNotBeNil)
		})
	})
}
