package profile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/calendar-heatmap/calendar"
	"github.com/warp/calendar-heatmap/profile"
)

func TestParse_FillsDefaults(t *testing.T) {
	p, err := profile.Parse([]byte("name: minimal\n"))
	require.NoError(t, err)

	assert.Equal(t, "minimal", p.Name)
	assert.Equal(t, "Activity overview", p.Title)
	assert.Equal(t, "en", p.LocaleCode)
	assert.Equal(t, 0, p.FirstWeekday)
	assert.Equal(t, 3, p.MonthsPerRow)
	assert.Equal(t, 143, p.Darkest)
}

func TestParse_FullProfile(t *testing.T) {
	doc := `
name: logons
title: Logon overview
locale: de
first_weekday: 6
months_per_row: 4
darkest: 200
`
	p, err := profile.Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "logons", p.Name)
	assert.Equal(t, "Logon overview", p.Title)
	assert.Equal(t, "de", p.LocaleCode)
	assert.Equal(t, 6, p.FirstWeekday)
	assert.Equal(t, 4, p.MonthsPerRow)
	assert.Equal(t, 200, p.Darkest)

	assert.Equal(t, calendar.German.Code, p.Locale().Code)
	assert.Equal(t, 6, p.Engine().FirstWeekday())
}

func TestParse_UnknownLocale(t *testing.T) {
	_, err := profile.Parse([]byte("locale: xx\n"))
	assert.ErrorIs(t, err, profile.ErrInvalidProfile)
}

func TestParse_MonthsPerRowOutOfRange(t *testing.T) {
	_, err := profile.Parse([]byte("months_per_row: 13\n"))
	assert.ErrorIs(t, err, profile.ErrInvalidProfile)

	_, err = profile.Parse([]byte("months_per_row: -1\n"))
	assert.ErrorIs(t, err, profile.ErrInvalidProfile)
}

func TestParse_DarkestOutOfRange(t *testing.T) {
	_, err := profile.Parse([]byte("darkest: 300\n"))
	assert.ErrorIs(t, err, profile.ErrInvalidProfile)
}

func TestParse_BadYAML(t *testing.T) {
	_, err := profile.Parse([]byte("\t: not yaml"))
	assert.Error(t, err)
}

func TestLoad_EmptyPathGivesDefault(t *testing.T) {
	p, err := profile.Load("")
	require.NoError(t, err)
	assert.Equal(t, "default", p.Name)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yml")
	require.NoError(t, os.WriteFile(path, []byte("title: From disk\n"), 0o644))

	p, err := profile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "From disk", p.Title)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := profile.Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestRenderer_CarriesProfileSettings(t *testing.T) {
	p, err := profile.Parse([]byte("locale: de\ntitle: Aktivität\n"))
	require.NoError(t, err)

	r := p.Renderer()
	header := r.FormatWeekHeader()

	assert.Contains(t, header, ">Mo</th>")
	assert.Contains(t, header, ">So</th>")
}

func TestRoundTrip(t *testing.T) {
	p, err := profile.Parse([]byte("name: rt\nlocale: de\ndarkest: 99\n"))
	require.NoError(t, err)

	back, err := profile.FromYAML(p.ToYAML())
	require.NoError(t, err)
	assert.Equal(t, p, back)
}
