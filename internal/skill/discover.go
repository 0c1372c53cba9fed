package skill

import (
	"os"
	"path/filepath"

	"github.com/klauern/skillmeta/internal/logging"
	"github.com/klauern/skillmeta/internal/model"
	"github.com/klauern/skillmeta/internal/parser"
)

// Discovered pairs a skill's properties with where they were read from.
type Discovered struct {
	// Directory is the absolute path to the skill directory
	Directory string
	// Manifest is the absolute path to the SKILL.md file
	Manifest string
	// Properties is the parsed metadata
	Properties model.SkillProperties
}

// Discover scans a directory for skill subdirectories and reads each one.
// Entries without a manifest are ignored; entries whose manifest fails to
// parse are skipped with a warning. A missing root directory yields an
// empty result, not an error.
func Discover(root string) ([]Discovered, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Debug("skills directory not found", logging.Dir(root))
			return nil, nil
		}
		return nil, err
	}

	var skills []Discovered
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir, err := filepath.Abs(filepath.Join(root, entry.Name()))
		if err != nil {
			continue
		}
		manifest := parser.FindManifest(dir)
		if manifest == "" {
			continue
		}
		props, err := ReadProperties(dir)
		if err != nil {
			logging.Warn("skipping unreadable skill",
				logging.Path(manifest),
				logging.Err(err),
			)
			continue
		}
		skills = append(skills, Discovered{
			Directory:  dir,
			Manifest:   manifest,
			Properties: props,
		})
	}

	logging.Debug("discovered skills", logging.Dir(root), logging.Count(len(skills)))
	return skills, nil
}

// DiscoverAll runs Discover across several roots in order, concatenating
// results. The first skill found for a name wins; later duplicates are
// dropped with a warning.
func DiscoverAll(roots []string) ([]Discovered, error) {
	var all []Discovered
	seen := make(map[string]string)
	for _, root := range roots {
		skills, err := Discover(root)
		if err != nil {
			return nil, err
		}
		for _, s := range skills {
			if prev, ok := seen[s.Properties.Name]; ok {
				logging.Warn("duplicate skill ignored",
					logging.Skill(s.Properties.Name),
					logging.Dir(s.Directory),
					logging.String("first_seen", prev),
				)
				continue
			}
			seen[s.Properties.Name] = s.Directory
			all = append(all, s)
		}
	}
	return all, nil
}
