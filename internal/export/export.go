// Package export writes extracted entities as JSON, YAML or TSV.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"gamescript-extractor/internal/model"
)

// Format is an output encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TSV  Format = "tsv"
)

// ParseFormat accepts json, yaml/yml or tsv.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "tsv":
		return TSV, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Write encodes snap to w. kinds limits the TSV tables written; empty means all.
// JSON and YAML always carry the whole snapshot.
func Write(w io.Writer, snap *model.Snapshot, f Format, kinds ...model.EntityType) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return enc.Close()
	case TSV:
		if len(kinds) == 0 {
			kinds = model.AllKinds
		}
		for i, k := range kinds {
			if len(kinds) > 1 {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "# %s\n", k)
			}
			if err := writeTable(w, snap, k); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown export format %q", f)
}

// ToFile writes snap to outputPath.
func ToFile(outputPath string, snap *model.Snapshot, f Format, kinds ...model.EntityType) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create %s file: %w", f, err)
	}
	defer file.Close()

	if err := Write(file, snap, f, kinds...); err != nil {
		return err
	}
	log.Info().Str("path", outputPath).Str("format", string(f)).Msg("Exported entities")
	return nil
}

func writeTable(w io.Writer, snap *model.Snapshot, kind model.EntityType) error {
	header, rows, err := table(snap, kind)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		for i := range row {
			row[i] = escapeTSV(row[i])
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return nil
}

func table(snap *model.Snapshot, kind model.EntityType) ([]string, [][]string, error) {
	var rows [][]string
	switch kind {
	case model.KindCharacter:
		for _, c := range snap.Characters {
			rows = append(rows, []string{
				c.Name, c.Job.Name, itoa(c.Level), itoa(c.HP), itoa(c.MaxHP),
				itoa(c.Stats.Power), itoa(c.Stats.Speed), itoa(c.Stats.Intelligence),
				itoa(c.Stats.Stamina), itoa(c.Stats.Luck), c.Sprite,
			})
		}
		return []string{"name", "job", "level", "hp", "max_hp", "power", "speed", "intelligence", "stamina", "luck", "sprite"}, rows, nil
	case model.KindItem:
		for _, it := range snap.Items {
			jobs := make([]string, len(it.ExcludedJobs))
			for i, j := range it.ExcludedJobs {
				jobs[i] = model.JobName(j)
			}
			rows = append(rows, []string{
				it.Name, it.Type.String(), it.Category, itoa(it.Power), itoa(it.Price),
				it.Rarity.String(), it.Effect.Type, strings.Join(jobs, ","),
			})
		}
		return []string{"name", "type", "category", "power", "price", "rarity", "effect", "excluded_jobs"}, rows, nil
	case model.KindSpell:
		for _, s := range snap.Spells {
			rows = append(rows, []string{s.Name, s.Element, itoa(s.Power), itoa(s.MPCost), s.Target, itoa(s.Level)})
		}
		return []string{"name", "element", "power", "mp_cost", "target", "level"}, rows, nil
	case model.KindMonster:
		for _, m := range snap.Monsters {
			rows = append(rows, []string{
				m.Name, itoa(m.HP), itoa(m.Attack), itoa(m.Defense), itoa(m.Exp), itoa(m.Gold),
				strings.Join(m.Weaknesses, ","), strings.Join(m.Resistances, ","),
			})
		}
		return []string{"name", "hp", "attack", "defense", "exp", "gold", "weaknesses", "resistances"}, rows, nil
	case model.KindMap:
		for _, m := range snap.Maps {
			rows = append(rows, []string{m.Name, itoa(m.Width), itoa(m.Height), m.Tileset, itoa(m.EncounterRate)})
		}
		return []string{"name", "width", "height", "tileset", "encounter_rate"}, rows, nil
	case model.KindBattle:
		for _, b := range snap.Battles {
			rows = append(rows, []string{
				b.Name, strings.Join(b.Enemies, ","), b.Background,
				strconv.FormatBool(b.Boss), strconv.FormatBool(b.NoEscape),
			})
		}
		return []string{"name", "enemies", "background", "boss", "no_escape"}, rows, nil
	case model.KindNPC:
		for _, n := range snap.NPCs {
			rows = append(rows, []string{
				itoa(n.ID), n.Name, n.Role, n.Map, itoa(n.X), itoa(n.Y),
				strconv.FormatBool(n.Quest), n.Dialogue,
			})
		}
		return []string{"id", "name", "role", "map", "x", "y", "quest", "dialogue"}, rows, nil
	}
	return nil, nil, fmt.Errorf("no table layout for kind %q", kind)
}

func itoa(n int) string { return strconv.Itoa(n) }

// escapeTSV replaces tabs and newlines in a string for TSV safety.
func escapeTSV(s string) string {
	s = strings.ReplaceAll(s, "\t", "\\t")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	return s
}
