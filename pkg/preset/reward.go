package preset

import (
	"path"
	"strings"

	"github.com/presetsmith/presetsmith/internal/common"
	"github.com/presetsmith/presetsmith/models"
)

// Form field labels for the reward issue form. Preset ID, Display Name,
// Description, and Keywords are shared with the votesite form.
const (
	fieldRewardType     = "Reward Type"
	fieldDefaultContent = "Default Content"
)

const rewardIDPrefix = "reward:"

// rewardShape pairs a reward type with its fragment header and the
// placeholder block key the fragment substitutes.
type rewardShape struct {
	header   string
	blockKey string
	label    string
}

var rewardShapes = map[string]rewardShape{
	"commands": {header: "Commands:", blockKey: "commandsBlock", label: "Commands to run on reward"},
	"messages": {header: "Messages:", blockKey: "messagesBlock", label: "Messages to send on reward"},
}

func (g *Generator) planReward(fields map[string]string) (*plan, error) {
	id := strings.TrimSpace(fields[fieldPresetID])
	if !strings.HasPrefix(id, rewardIDPrefix) || id == rewardIDPrefix {
		return nil, invalidField(fieldPresetID, "must start with "+rewardIDPrefix)
	}

	displayName := strings.TrimSpace(fields[fieldDisplayName])
	if displayName == "" {
		return nil, invalidField(fieldDisplayName, "a display name is required")
	}

	rewardType := strings.ToLower(strings.TrimSpace(fields[fieldRewardType]))
	shape, ok := rewardShapes[rewardType]
	if !ok {
		return nil, invalidField(fieldRewardType, "must be one of: commands, messages")
	}

	content := common.SplitLines(fields[fieldDefaultContent])
	if len(content) == 0 {
		return nil, invalidField(fieldDefaultContent, "at least one content line is required")
	}

	// File names derive from the id; ":" and "/" are the only characters
	// the id namespace allows that the filesystem shouldn't see.
	base := strings.ReplaceAll(strings.ReplaceAll(id, ":", "_"), "/", "_")
	metaPath := path.Join(g.Config.PresetsRoot, "rewards", base+g.Config.MetaSuffix)
	fragmentPath := path.Join(g.Config.PresetsRoot, "rewards", base+".fragment.yml")

	meta := &models.PresetMeta{
		SchemaVersion: models.MetaSchemaVersion,
		ID:            id,
		Display: models.Display{
			Name:        displayName,
			Description: strings.TrimSpace(fields[fieldDescription]),
		},
		Match: models.Match{
			Keywords: common.SplitCSV(fields[fieldKeywords]),
		},
		Placeholders: map[string]models.Placeholder{
			shape.blockKey: {Type: "text", Label: shape.label, Default: strings.Join(content, "\n")},
		},
		Fragments: []models.FragmentRef{
			{Path: fragmentPath, MergeInto: "Rewards"},
		},
		Verified:  false,
		UpdatedAt: g.timestamp(),
	}

	fragment := shape.header + "\n{{" + shape.blockKey + "}}\n"

	return &plan{
		meta:            meta,
		metaPath:        metaPath,
		fragmentPath:    fragmentPath,
		fragmentContent: []byte(fragment),
	}, nil
}
