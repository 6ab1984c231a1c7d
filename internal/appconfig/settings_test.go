package appconfig

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hastd/bikedfr/internal/keys"
	"github.com/hastd/bikedfr/internal/ncw"
)

func TestFromArgsExample(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	argv := []string{
		"-N", "1.75e4",
		"-w", "-1",
		"-T", "4",
		"--fixed-key", `{"h0":[6,25,77,145,165,212,230,232,247,261,306,341,449,466,493],"h1":[35,108,119,159,160,163,221,246,249,286,310,360,484,559,580]}`,
		"-S", "C",
		"-l", "7",
		"-o", "test/path/to/file.json",
		"--overwrite",
		"--parallel",
		"-m", "123.4",
		"-s", "50",
		"--seed", "874a5940435d8a5462d8579af9f4cad2a737880dfb13620c5257a60ffaaae6c4",
		"--threads", "999999",
		"-vv",
	}
	a, err := ParseArgs(fs, argv)
	require.NoError(t, err)

	settings, err := FromArgs(a)
	require.NoError(t, err)

	assert.EqualValues(t, 17500, settings.NumTrials)
	assert.Equal(t, keys.FilterNonWeak, settings.TrialSettings.KeyFilter.Kind)
	assert.EqualValues(t, 4, settings.TrialSettings.KeyFilter.Threshold)
	require.NotNil(t, settings.TrialSettings.FixedKey)
	assert.Equal(t, []uint32{6, 25, 77, 145, 165, 212, 230, 232, 247, 261, 306, 341, 449, 466, 493}, settings.TrialSettings.FixedKey.H0.Support())
	assert.True(t, settings.TrialSettings.HasNCW)
	assert.Equal(t, ncw.ClassC, settings.TrialSettings.NCWClass)
	assert.Equal(t, 7, settings.TrialSettings.NCWOverlap)
	assert.EqualValues(t, MinSaveFrequency, settings.SaveFrequency())
	assert.EqualValues(t, 123, settings.RecordMax)
	assert.Equal(t, 2, settings.Verbose)
	require.NotNil(t, settings.Seed)
	assert.Nil(t, settings.SeedIndex)
	assert.Equal(t, MaxThreadCount, settings.Threads)
	assert.Equal(t, OutputFile, settings.Output.Kind)
	assert.Equal(t, "test/path/to/file.json", settings.Output.Path)
	assert.True(t, settings.Overwrite)
}

func TestFromArgsDefaultSaveFrequencyIsNumTrials(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	a, err := ParseArgs(fs, []string{"-N", "12345"})
	require.NoError(t, err)

	settings, err := FromArgs(a)
	require.NoError(t, err)
	assert.EqualValues(t, settings.NumTrials, settings.SaveFrequency())
	assert.Equal(t, 1, settings.Threads)
	assert.False(t, settings.Parallel())
}

func TestNewTrialSettingsRejectsOverlapWithoutClass(t *testing.T) {
	_, err := NewTrialSettings(keys.Filter{Kind: keys.FilterAny}, nil, 0, false, 5, true)
	assert.ErrorIs(t, err, ErrNCWDependency)
}

func TestNewTrialSettingsRejectsOverlapOutOfRange(t *testing.T) {
	_, err := NewTrialSettings(keys.Filter{Kind: keys.FilterAny}, nil, ncw.ClassN, true, 999, true)
	assert.ErrorIs(t, err, ErrNCWRange)
}
