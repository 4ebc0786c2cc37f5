// Package campaigntest writes small campaign fixtures for tests.
package campaigntest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const header = "alpha2country,region,province,age,gender,profession,setting,response_year,data_source,ingestion_time,q1_raw_response,q1_canonical_code,q1_lemmatized"

// WRA is a youth campaign with ages and living settings.
const WRA = `code: wra
name: What Women Want
respondent_noun_singular: woman
respondent_noun_plural: women
data_file: wra.csv
extra_stopwords: [please]
capabilities:
  has_age: true
  has_age_bucket: true
  has_gender: true
  has_living_setting: true
  breakdown_limit: 10
parent_categories:
  - code: HEALTH
    description: Health
    sub_categories:
      - {code: WATER, description: Clean water}
      - {code: CLINIC, description: Clinics}
  - code: EDU
    description: Education
    sub_categories:
      - {code: SCHOOL, description: Schools}
`

var wraRows = []string{
	`KE,Nairobi,,23,Female,,urban,2022,web,2022-05-01T10:00:00Z,Clean water for the village,WATER,clean water village`,
	`KE,Mombasa,Coast,31,Female,,rural,2023,web,,Better schools and clean water,SCHOOL/WATER,better school clean water`,
	`NG,Lagos,,17,Female,,urban,2023,sms,,Health clinics please,CLINIC,health clinic please`,
	`NG,Kano,,prefer not to say,Female,,rural,2022,sms,,Clean water,WATER,clean water`,
}

// PMN is a professional campaign with professions and no ages.
const PMN = `code: pmn
name: Midwives' Voices
respondent_noun_singular: midwife
respondent_noun_plural: midwives
data_file: pmn.csv
capabilities:
  has_gender: true
  has_profession: true
parent_categories:
  - code: WORK
    description: Working conditions
    sub_categories:
      - {code: STAFF, description: Staffing}
      - {code: SUPPLIES, description: Supplies}
  - code: HEALTH
    description: Health
    sub_categories:
      - {code: WATER, description: Clean water}
`

var pmnRows = []string{
	`KE,Nairobi,,,Female,Midwife,,2023,web,,More staff,STAFF,more staff`,
	`PK,Punjab,,,Female,Nurse,,2023,web,,Clean water at clinics,WATER,clean water clinic`,
	`PK,Sindh,,,Male,Nurse,,2023,web,,Staff and supplies,STAFF/SUPPLIES,staff supply`,
}

// Write creates the wra and pmn fixtures in a fresh directory and returns it.
func Write(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	write(t, dir, "wra.yaml", WRA)
	write(t, dir, "wra.csv", csv(wraRows))
	write(t, dir, "pmn.yaml", PMN)
	write(t, dir, "pmn.csv", csv(pmnRows))
	return dir
}

func csv(rows []string) string {
	return header + "\n" + strings.Join(rows, "\n") + "\n"
}

func write(t testing.TB, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
}
