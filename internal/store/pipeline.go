package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"gamescript-extractor/internal/cascade"
	"gamescript-extractor/internal/dedupe"
	"gamescript-extractor/internal/fallback"
	"gamescript-extractor/internal/model"
	"gamescript-extractor/internal/parser"
)

// lists holds the seven entity lists of one extraction.
type lists struct {
	characters []model.Character
	items      []model.Item
	spells     []model.Spell
	monsters   []model.Monster
	maps       []model.Map
	battles    []model.Battle
	npcs       []model.NPC
}

// kindResult is the output of one type's pipeline: its report and a function
// placing its list into the shared result.
type kindResult struct {
	report KindReport
	assign func(*lists)
}

// pipeline runs cascade, parser and dedupe for one type and substitutes the
// default dataset when nothing survives.
func pipeline[T model.Entity](src string, kind model.EntityType, parse func(cascade.Candidate) (T, error), defaults func() []T) ([]T, KindReport) {
	rep := KindReport{Kind: kind}

	cands, err := cascade.MustFor(kind).Run(src)
	if err != nil {
		log.Debug().Str("kind", string(kind)).Err(err).Msg("Cascade empty")
	} else {
		rep.Strategy = cands[0].Strategy
		rep.Candidates = len(cands)
	}

	parsed, discarded := parser.All(kind, cands, parse)
	list, dropped := dedupe.ByName(parsed)
	rep.Discarded, rep.Duplicates = discarded, dropped

	if len(list) == 0 {
		list = defaults()
		rep.Default = true
		log.Warn().Str("kind", string(kind)).Int("defaults", len(list)).Msg("Nothing extracted, using default dataset")
	}
	rep.Count = len(list)

	log.Info().
		Str("kind", string(kind)).
		Str("strategy", rep.Strategy).
		Int("candidates", rep.Candidates).
		Int("discarded", rep.Discarded).
		Int("duplicates", rep.Duplicates).
		Int("count", rep.Count).
		Msg("Extracted")
	return list, rep
}

// extractKind is the worker pool task for one entity type.
func extractKind(p *parser.Parser, src string) func(context.Context, model.EntityType) (kindResult, error) {
	return func(_ context.Context, kind model.EntityType) (kindResult, error) {
		switch kind {
		case model.KindCharacter:
			list, rep := pipeline(src, kind, p.ParseCharacter, fallback.Characters)
			return kindResult{rep, func(l *lists) { l.characters = list }}, nil
		case model.KindItem:
			list, rep := pipeline(src, kind, p.ParseItem, fallback.Items)
			return kindResult{rep, func(l *lists) { l.items = list }}, nil
		case model.KindSpell:
			list, rep := pipeline(src, kind, p.ParseSpell, fallback.Spells)
			return kindResult{rep, func(l *lists) { l.spells = list }}, nil
		case model.KindMonster:
			list, rep := pipeline(src, kind, p.ParseMonster, fallback.Monsters)
			return kindResult{rep, func(l *lists) { l.monsters = list }}, nil
		case model.KindMap:
			list, rep := pipeline(src, kind, p.ParseMap, fallback.Maps)
			return kindResult{rep, func(l *lists) { l.maps = list }}, nil
		case model.KindBattle:
			list, rep := pipeline(src, kind, p.ParseBattle, fallback.Battles)
			return kindResult{rep, func(l *lists) { l.battles = list }}, nil
		case model.KindNPC:
			list, rep := pipeline(src, kind, p.ParseNPC, fallback.NPCs)
			return kindResult{rep, func(l *lists) { l.npcs = list }}, nil
		}
		return kindResult{}, fmt.Errorf("unknown entity kind %q", kind)
	}
}
