package calib

import (
	"fmt"
	"os"

	"github.com/samcharles93/tsphot/internal/logger"
)

// Pipeline loads or creates master calibration frames per the configuration.
type Pipeline struct {
	Config Config
	// Rereduce forces masters to be rebuilt from the raw calibration
	// files even when a persisted artifact exists.
	Rereduce bool
	Log      logger.Logger
}

// Run returns one master per configured image type. An existing master
// artifact is loaded unless Rereduce is set; otherwise the master is built
// from the raw calibration file and, when a master path is configured,
// persisted for the next run.
func (p *Pipeline) Run() (map[string]*Master, error) {
	log := p.Log
	if log == nil {
		log = logger.Default()
	}

	masters := make(map[string]*Master, len(p.Config.Calib))
	for _, imtype := range p.Config.imageTypes() {
		cpath := p.Config.Calib[imtype]
		mpath := p.Config.Master[imtype]

		if !p.Rereduce && mpath != "" {
			if _, err := os.Stat(mpath); err == nil {
				m, err := ReadMaster(mpath)
				if err != nil {
					return nil, fmt.Errorf("load master %s: %w", imtype, err)
				}
				log.Debug("loaded master calibration frame", "type", imtype, "path", mpath, "run_id", m.RunID)
				masters[imtype] = m
				continue
			}
		}

		if _, err := os.Stat(cpath); err != nil {
			return nil, fmt.Errorf("calibration file for %s: %w", imtype, err)
		}
		log.Info("creating master calibration frame", "type", imtype, "from", cpath)
		m, err := BuildMaster(cpath, imtype)
		if err != nil {
			return nil, err
		}
		if mpath != "" {
			log.Debug("writing master calibration frame", "type", imtype, "path", mpath)
			if err := WriteMaster(mpath, m); err != nil {
				return nil, fmt.Errorf("write master %s: %w", imtype, err)
			}
		}
		masters[imtype] = m
	}
	return masters, nil
}
