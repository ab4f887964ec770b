package preset

import (
	"path"
	"strconv"
	"strings"

	"github.com/presetsmith/presetsmith/internal/common"
	"github.com/presetsmith/presetsmith/models"
)

// Form field labels for the votesite issue form.
const (
	fieldDomain             = "Domain"
	fieldExtraDomains       = "Additional Domains"
	fieldPresetID           = "Preset ID"
	fieldSiteKey            = "Site Key"
	fieldDisplayName        = "Display Name"
	fieldServiceSite        = "Service Site"
	fieldDescription        = "Description"
	fieldKeywords           = "Keywords"
	fieldVoteURL            = "Vote URL"
	fieldVoteDelay          = "Vote Delay"
	fieldWaitUntilVoteDelay = "Wait Until Vote Delay"
	fieldVoteDelayDaily     = "Vote Delay Daily"
	fieldVoteDelayDailyHour = "Vote Delay Daily Hour"
)

const votesiteIDPrefix = "votesite:"

// defaultVoteURL is the placeholder value used when the submission did
// not include a vote URL; maintainers fill it in before release.
const defaultVoteURL = "ADD_VOTE_URL_LATER"

func (g *Generator) planVoteSite(fields map[string]string) (*plan, error) {
	domain := common.NormalizeDomain(fields[fieldDomain])
	if domain == "" {
		return nil, invalidField(fieldDomain, "a domain is required")
	}

	id := strings.TrimSpace(fields[fieldPresetID])
	if !strings.HasPrefix(id, votesiteIDPrefix) || id == votesiteIDPrefix {
		return nil, invalidField(fieldPresetID, "must start with "+votesiteIDPrefix)
	}

	siteKey := strings.TrimSpace(fields[fieldSiteKey])
	if siteKey == "" {
		return nil, invalidField(fieldSiteKey, "a site key is required")
	}
	displayName := strings.TrimSpace(fields[fieldDisplayName])
	if displayName == "" {
		return nil, invalidField(fieldDisplayName, "a display name is required")
	}
	serviceSite := strings.TrimSpace(fields[fieldServiceSite])
	if serviceSite == "" {
		return nil, invalidField(fieldServiceSite, "a service site is required")
	}

	// Extra domains normalize the same way and deduplicate against the
	// primary domain.
	domains := []string{domain}
	seen := map[string]bool{domain: true}
	for _, extra := range common.SplitCSV(fields[fieldExtraDomains]) {
		normalized := common.NormalizeDomain(extra)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		domains = append(domains, normalized)
	}

	voteURL := strings.TrimSpace(fields[fieldVoteURL])
	if voteURL == "" {
		voteURL = defaultVoteURL
	}

	placeholders := map[string]models.Placeholder{
		"siteKey":            {Type: "string", Label: "Votifier site key", Default: siteKey},
		"displayName":        {Type: "string", Label: "Display name", Default: displayName},
		"serviceSite":        {Type: "string", Label: "Service site identifier", Default: serviceSite},
		"voteURL":            {Type: "string", Label: "Vote URL", Default: voteURL},
		"voteDelay":          {Type: "int", Label: "Vote delay in hours", Default: intDefault(fields[fieldVoteDelay])},
		"waitUntilVoteDelay": {Type: "boolean", Label: "Wait until vote delay expires", Default: boolDefault(fields[fieldWaitUntilVoteDelay])},
		"voteDelayDaily":     {Type: "boolean", Label: "Reset vote delay daily", Default: boolDefault(fields[fieldVoteDelayDaily])},
		"voteDelayDailyHour": {Type: "int", Label: "Daily vote delay reset hour", Default: intDefault(fields[fieldVoteDelayDailyHour])},
	}

	meta := &models.PresetMeta{
		SchemaVersion: models.MetaSchemaVersion,
		ID:            id,
		Display: models.Display{
			Name:        displayName,
			Description: strings.TrimSpace(fields[fieldDescription]),
		},
		Match: models.Match{
			Domains:  domains,
			Keywords: common.SplitCSV(fields[fieldKeywords]),
		},
		Placeholders: placeholders,
		Fragments:    []models.FragmentRef{},
		Verified:     false,
		UpdatedAt:    g.timestamp(),
	}

	fileName := strings.ReplaceAll(domain, ".", "_") + g.Config.MetaSuffix
	return &plan{
		meta:     meta,
		metaPath: path.Join(g.Config.PresetsRoot, "votesites", fileName),
	}, nil
}

// intDefault accepts an integer-string form and falls back to the empty
// default, which the renderer treats as "omit".
func intDefault(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if _, err := strconv.Atoi(trimmed); err != nil {
		return ""
	}
	return trimmed
}

// boolDefault accepts only "true" or "false" (case-insensitive).
func boolDefault(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered != "true" && lowered != "false" {
		return ""
	}
	return lowered
}
