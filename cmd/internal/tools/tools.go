package tools

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/nathanhack/syndromedecoding/alphabet"
	"github.com/nathanhack/syndromedecoding/benchmarking"
	"github.com/nathanhack/syndromedecoding/linearblock"
	"github.com/nathanhack/syndromedecoding/linearblock/syndrome"
	mat "github.com/nathanhack/sparsemat"
)

type SimulationStats struct {
	TypeInfo string
	ECCInfo  string
	Stats    map[float64]benchmarking.Stats
}
type simulationStats struct {
	TypeInfo string
	ECCInfo  string
	Stats    map[string]benchmarking.Stats
}

func (s *SimulationStats) MarshalJSON() ([]byte, error) {
	ss := simulationStats{
		TypeInfo: s.TypeInfo,
		ECCInfo:  s.ECCInfo,
		Stats:    map[string]benchmarking.Stats{},
	}

	for f, stat := range s.Stats {
		ss.Stats[fmt.Sprintf("%v", f)] = stat
	}

	return json.Marshal(ss)
}

func (s *SimulationStats) UnmarshalJSON(bytes []byte) error {
	var ss simulationStats

	err := json.Unmarshal(bytes, &ss)
	if err != nil {
		return err
	}

	s.TypeInfo = ss.TypeInfo
	s.ECCInfo = ss.ECCInfo
	s.Stats = map[float64]benchmarking.Stats{}

	for fs, stat := range ss.Stats {
		f, err := strconv.ParseFloat(fs, 64)
		if err != nil {
			return err
		}
		s.Stats[f] = stat
	}
	return nil
}

func Md5Sum(H mat.SparseMat) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(H.String())))
}

func LoadLinearBlockECC(filepath string) (*linearblock.LinearBlock, error) {
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return nil, fmt.Errorf("the ECC_JSON_FILE must exist")
	}

	bs, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error while reading file %v: %w", filepath, err)
	}

	var ecc linearblock.LinearBlock
	err = json.Unmarshal(bs, &ecc)
	if err != nil {
		return nil, fmt.Errorf("error while reading file %v: %w", filepath, err)
	}

	return &ecc, nil
}

//LoadLetterCode loads the linearblock at filepath and builds the letter code around it.
// A seed of 0 leaves the fallback choices time seeded.
func LoadLetterCode(ctx context.Context, filepath string, seed int64) (*syndrome.Code[rune], error) {
	ecc, err := LoadLinearBlockECC(filepath)
	if err != nil {
		return nil, err
	}

	opts := make([]syndrome.Option, 0, 1)
	if seed != 0 {
		opts = append(opts, syndrome.WithSeed(seed))
	}

	code, err := syndrome.FromLinearBlock(ctx, ecc, alphabet.Letters(), opts...)
	if err != nil {
		return nil, fmt.Errorf("error while creating letter code from %v: %w", filepath, err)
	}
	return code, nil
}

func LoadResults(filepath string) (*SimulationStats, error) {
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return nil, nil
	}

	bs, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error while reading file %v: %w", filepath, err)
	}

	var stat SimulationStats
	err = json.Unmarshal(bs, &stat)
	if err != nil {
		return nil, fmt.Errorf("error while unmarshalling file %v: %w", filepath, err)
	}
	return &stat, nil
}

//LoadAllResults loads every results file, failing if any of them is missing.
func LoadAllResults(filepaths []string) ([]*SimulationStats, error) {
	stats := make([]*SimulationStats, len(filepaths))
	for i, resultFile := range filepaths {
		stat, err := LoadResults(resultFile)
		if err != nil {
			return nil, err
		}
		if stat == nil {
			return nil, fmt.Errorf("results file %v does not exist", resultFile)
		}
		stats[i] = stat
	}
	return stats, nil
}

func SaveResults(filepath string, data *SimulationStats) error {
	bs, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error serializing results: %w", err)
	}

	err = os.WriteFile(filepath, bs, 0644)
	if err != nil {
		return fmt.Errorf("error while saving results to %v: %w", filepath, err)
	}
	return nil
}
