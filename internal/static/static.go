package static

import _ "embed"

// SkillMd contains the embedded skill.md file for AI agents.
//
//go:embed skill.md
var SkillMd string
