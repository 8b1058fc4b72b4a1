package sla

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Calendar describes the business-hours work window and holiday dates used by
// BusinessHoursClock. Holiday entries are dates formatted as 2006-01-02.
type Calendar struct {
	WorkHours struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"work_hours"`
	Holidays []string `yaml:"holidays"`
}

// LoadCalendar reads a calendar definition from a YAML file.
func LoadCalendar(path string) (*Calendar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var calendar Calendar
	if err := yaml.NewDecoder(f).Decode(&calendar); err != nil {
		return nil, err
	}
	return &calendar, nil
}

func (c Calendar) holidaySet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Holidays))
	for _, day := range c.Holidays {
		set[day] = struct{}{}
	}
	return set
}
