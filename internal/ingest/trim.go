package ingest

import (
	"fmt"

	"riftcoach/internal/schema"

	"github.com/tidwall/gjson"
)

// TrimChampions reduces a raw champion.json payload to the fields the
// pipeline reads, keyed by champion id.
func TrimChampions(raw []byte) (map[string]schema.ChampionRecord, error) {
	data := gjson.GetBytes(raw, "data")
	if !data.Exists() {
		return nil, fmt.Errorf("champion payload has no data object")
	}
	out := make(map[string]schema.ChampionRecord)
	data.ForEach(func(key, val gjson.Result) bool {
		rec := schema.ChampionRecord{
			ID:      val.Get("id").String(),
			Key:     val.Get("key").String(),
			Name:    val.Get("name").String(),
			Title:   val.Get("title").String(),
			Partype: val.Get("partype").String(),
		}
		for _, tag := range val.Get("tags").Array() {
			rec.Tags = append(rec.Tags, tag.String())
		}
		out[rec.ID] = rec
		return true
	})
	if len(out) == 0 {
		return nil, fmt.Errorf("champion payload yielded no records")
	}
	return out, nil
}

// TrimItems reduces a raw item.json payload, keyed by numeric item id.
// Entries without a name (map fragments, removed items) are skipped.
func TrimItems(raw []byte) (map[string]schema.ItemRecord, error) {
	data := gjson.GetBytes(raw, "data")
	if !data.Exists() {
		return nil, fmt.Errorf("item payload has no data object")
	}
	out := make(map[string]schema.ItemRecord)
	data.ForEach(func(key, val gjson.Result) bool {
		name := val.Get("name").String()
		if name == "" {
			return true
		}
		rec := schema.ItemRecord{
			ID:        key.String(),
			Name:      name,
			Gold:      int(val.Get("gold.total").Int()),
			Plaintext: val.Get("plaintext").String(),
		}
		for _, tag := range val.Get("tags").Array() {
			rec.Tags = append(rec.Tags, tag.String())
		}
		out[rec.ID] = rec
		return true
	})
	if len(out) == 0 {
		return nil, fmt.Errorf("item payload yielded no records")
	}
	return out, nil
}

// TrimRuneTrees reduces a raw runesReforged.json payload.
func TrimRuneTrees(raw []byte) ([]schema.RuneTreeRecord, error) {
	trees := gjson.ParseBytes(raw)
	if !trees.IsArray() {
		return nil, fmt.Errorf("rune payload is not an array")
	}
	var out []schema.RuneTreeRecord
	trees.ForEach(func(_, tree gjson.Result) bool {
		rec := schema.RuneTreeRecord{
			ID:   int(tree.Get("id").Int()),
			Key:  tree.Get("key").String(),
			Name: tree.Get("name").String(),
		}
		tree.Get("slots").ForEach(func(_, slot gjson.Result) bool {
			var sr schema.RuneSlotRecord
			slot.Get("runes").ForEach(func(_, r gjson.Result) bool {
				sr.Runes = append(sr.Runes, schema.RuneRecord{
					ID:   int(r.Get("id").Int()),
					Key:  r.Get("key").String(),
					Name: r.Get("name").String(),
				})
				return true
			})
			rec.Slots = append(rec.Slots, sr)
			return true
		})
		out = append(out, rec)
		return true
	})
	if len(out) == 0 {
		return nil, fmt.Errorf("rune payload yielded no trees")
	}
	return out, nil
}
