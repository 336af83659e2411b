// Package gemstats parses gem5 statistics dumps and derives the metrics
// used to compare pipeline experiments: IPC, branch prediction accuracy,
// and cache hit rates.
package gemstats

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Metrics holds the key values extracted from a gem5 stats.txt dump.
// Fields are zero when the stat is absent from the dump.
type Metrics struct {
	SimSeconds     float64 `json:"sim_seconds"`
	SimInsts       int64   `json:"sim_insts"`
	HostInstRate   float64 `json:"host_inst_rate"`
	CommittedInsts int64   `json:"committed_insts"`
	NumCycles      int64   `json:"num_cycles"`
	IPC            float64 `json:"ipc"`

	BranchLookups       int64 `json:"branch_lookups"`
	BranchCondPredicted int64 `json:"branch_cond_predicted"`
	BranchCondIncorrect int64 `json:"branch_cond_incorrect"`

	ICacheHits    int64 `json:"icache_hits"`
	ICacheMisses  int64 `json:"icache_misses"`
	DCacheHits    int64 `json:"dcache_hits"`
	DCacheMisses  int64 `json:"dcache_misses"`
	L2CacheHits   int64 `json:"l2cache_hits"`
	L2CacheMisses int64 `json:"l2cache_misses"`

	FetchRate  float64 `json:"fetch_rate"`
	DecodeRate float64 `json:"decode_rate"`
	CommitRate float64 `json:"commit_rate"`
}

// Parse reads a gem5 stats.txt dump: whitespace-separated
// "name value # description" lines, framed by dashed begin/end markers.
// Unknown stats and unparseable values are ignored.
func Parse(r io.Reader) (Metrics, error) {
	var m Metrics

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		name, raw := fields[0], fields[1]

		switch name {
		case "sim_seconds":
			m.SimSeconds = parseFloat(raw)
		case "sim_insts":
			m.SimInsts = parseInt(raw)
		case "host_inst_rate":
			m.HostInstRate = parseFloat(raw)
		case "system.cpu.committedInsts":
			m.CommittedInsts = parseInt(raw)
		case "system.cpu.numCycles":
			m.NumCycles = parseInt(raw)
		case "system.cpu.ipc":
			m.IPC = parseFloat(raw)
		case "system.cpu.branchPred.lookups":
			m.BranchLookups = parseInt(raw)
		case "system.cpu.branchPred.condPredicted":
			m.BranchCondPredicted = parseInt(raw)
		case "system.cpu.branchPred.condIncorrect":
			m.BranchCondIncorrect = parseInt(raw)
		case "system.cpu.icache.overall_hits::total":
			m.ICacheHits = parseInt(raw)
		case "system.cpu.icache.overall_misses::total":
			m.ICacheMisses = parseInt(raw)
		case "system.cpu.dcache.overall_hits::total":
			m.DCacheHits = parseInt(raw)
		case "system.cpu.dcache.overall_misses::total":
			m.DCacheMisses = parseInt(raw)
		case "system.l2cache.overall_hits::total":
			m.L2CacheHits = parseInt(raw)
		case "system.l2cache.overall_misses::total":
			m.L2CacheMisses = parseInt(raw)
		case "system.cpu.fetch.rate":
			m.FetchRate = parseFloat(raw)
		case "system.cpu.decode.rate":
			m.DecodeRate = parseFloat(raw)
		case "system.cpu.commit.rate":
			m.CommitRate = parseFloat(raw)
		}
	}

	if err := sc.Err(); err != nil {
		return m, fmt.Errorf("scan stats: %w", err)
	}

	return m, nil
}

// ParseFile reads and parses the stats dump at path.
func ParseFile(path string) (Metrics, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metrics{}, fmt.Errorf("open stats file: %w", err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return m, fmt.Errorf("parse %s: %w", path, err)
	}

	return m, nil
}

// BranchAccuracy returns 1 - incorrect/predicted, or 0 when the dump
// recorded no conditional predictions.
func (m Metrics) BranchAccuracy() float64 {
	if m.BranchCondPredicted == 0 {
		return 0
	}

	return 1 - float64(m.BranchCondIncorrect)/float64(m.BranchCondPredicted)
}

// ICacheHitRate returns the instruction cache hit rate.
func (m Metrics) ICacheHitRate() float64 {
	return hitRate(m.ICacheHits, m.ICacheMisses)
}

// DCacheHitRate returns the data cache hit rate.
func (m Metrics) DCacheHitRate() float64 {
	return hitRate(m.DCacheHits, m.DCacheMisses)
}

// L2CacheHitRate returns the L2 cache hit rate.
func (m Metrics) L2CacheHitRate() float64 {
	return hitRate(m.L2CacheHits, m.L2CacheMisses)
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}

	return float64(hits) / float64(total)
}

// gem5 emits "nan" and "inf" for some rates; treat anything
// unparseable as absent.
func parseFloat(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}

func parseInt(raw string) int64 {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}

	return v
}
