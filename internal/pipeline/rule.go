package pipeline

import (
	"fmt"

	"github.com/EvanDorsky/3dprint-gcode-speedup/internal/config"
	"github.com/EvanDorsky/3dprint-gcode-speedup/internal/gcode"
)

// Lookup locates one line a rule depends on.
type Lookup struct {
	Name  string
	Term  string
	Where gcode.Where
}

// Rule is one edit of the start script. Apply receives the located lines in
// the order of Lookups, after every lookup has succeeded.
type Rule struct {
	Name        string
	Description string
	Mode        config.Mode
	Lookups     []Lookup
	Apply       func(doc *gcode.Document, found []*gcode.Line) error
}

// rule names
const (
	MatchBedLevelingTemp = "match-bed-leveling-temp"
	SkipBedLevelingWait  = "skip-bed-leveling-wait"
	DropExtruderReheat   = "drop-extruder-reheat"
	LoadBedMesh          = "load-bed-mesh"
)

// comments written by the printer's start script
const (
	bedLevelingTempNote = "set extruder temp for bed leveling"
	printTempNote       = "set extruder temp"
	bedLevelingWaitNote = "wait for bed leveling temp"
)

// DefaultRules returns the speed-up rules in the order they must run.
// meshLoad is the line that replaces the bed probing command.
func DefaultRules(meshLoad string) []Rule {
	return []Rule{
		{
			Name:        MatchBedLevelingTemp,
			Description: "heat the nozzle to the print temperature before bed leveling",
			Mode:        config.ModeRequired,
			Lookups: []Lookup{
				{Name: "bed", Term: "M104", Where: gcode.Where{gcode.FieldCommentText: bedLevelingTempNote}},
				{Name: "print", Term: "M104", Where: gcode.Where{gcode.FieldCommentText: printTempNote}},
			},
			Apply: func(doc *gcode.Document, found []*gcode.Line) error {
				bed, target := found[0], found[1]
				if len(target.Args) == 0 {
					return fmt.Errorf("%w: print temperature on line %d has no value", gcode.ErrArgIndex, target.Position+1)
				}
				return doc.RewriteArg(bed, 0, target.Args[0])
			},
		},
		{
			Name:        SkipBedLevelingWait,
			Description: "stop waiting for the bed leveling temperature",
			Mode:        config.ModeRequired,
			Lookups: []Lookup{
				{Name: "wait", Term: "M109", Where: gcode.Where{gcode.FieldCommentText: bedLevelingWaitNote}},
			},
			Apply: commentOutAll,
		},
		{
			Name:        DropExtruderReheat,
			Description: "drop the second extruder temperature set, the nozzle is already hot",
			Mode:        config.ModeRequired,
			Lookups: []Lookup{
				{Name: "reheat", Term: "M104", Where: gcode.Where{gcode.FieldCommentText: printTempNote}},
			},
			Apply: commentOutAll,
		},
		{
			Name:        LoadBedMesh,
			Description: "load the saved bed mesh instead of probing",
			Mode:        config.ModeRequired,
			Lookups: []Lookup{
				{Name: "probe", Term: "G29", Where: gcode.Where{gcode.FieldCommand: "G29"}},
			},
			Apply: func(doc *gcode.Document, found []*gcode.Line) error {
				probe := found[0]
				if err := doc.CommentOut(probe); err != nil {
					return err
				}
				return doc.ReplaceLine(probe.Position, meshLoad)
			},
		},
	}
}

func commentOutAll(doc *gcode.Document, found []*gcode.Line) error {
	for _, line := range found {
		if err := doc.CommentOut(line); err != nil {
			return err
		}
	}
	return nil
}
