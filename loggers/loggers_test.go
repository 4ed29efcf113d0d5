package loggers

import (
	"encoding/json"
	"path"
	"sync"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type FakeIoWriter struct {
	Entries []string
}

func (f *FakeIoWriter) Write(p []byte) (n int, err error) {
	f.Entries = append(f.Entries, string(p))
	return len(p), nil
}

func TestLogToFile(t *testing.T) {
	fakeWriter := FakeIoWriter{}
	lMgr := MakeLoggerManager(&fakeWriter)

	logfile := path.Join(t.TempDir(), "mylogfile.txt")
	require.NoFileExists(t, logfile)
	logger, err := lMgr.MakeRootLogger(log.InfoLevel, logfile)
	require.NoError(t, err)

	testString := "1234abcd"
	logger.Info(testString)
	assert.FileExists(t, logfile)
	assert.Len(t, fakeWriter.Entries, 1)
	assert.Contains(t, fakeWriter.Entries[0], testString)
}

func TestComponentLogFormatterTags(t *testing.T) {
	fakeWriter := FakeIoWriter{}
	logger := log.New()
	formatter := MakeComponentLogFormatter("sink", "pulsar")
	logger.SetFormatter(&formatter)
	logger.SetOutput(&fakeWriter)

	logger.Info("rendering")
	require.Len(t, fakeWriter.Entries, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(fakeWriter.Entries[0]), &entry))
	assert.Equal(t, "sink", entry["__kind"])
	assert.Equal(t, "pulsar", entry["_name"])
	assert.Equal(t, "rendering", entry["msg"])
}

// TestThreadSafetyOfLogger ensures that multiple threads writing to a single
// source don't get corrupted
func TestThreadSafetyOfLogger(t *testing.T) {
	fakeWriter := FakeIoWriter{}
	lMgr := MakeLoggerManager(&fakeWriter)

	const numberOfWritesPerLogger = 20
	const numberOfLoggers = 15

	var wg sync.WaitGroup
	wg.Add(numberOfLoggers)
	for i := 0; i < numberOfLoggers; i++ {
		logger, err := lMgr.MakeRootLogger(log.InfoLevel, "")
		require.NoError(t, err)
		go func() {
			defer wg.Done()
			for j := 0; j < numberOfWritesPerLogger; j++ {
				logger.Info("some log message")
			}
		}()
	}
	wg.Wait()

	require.Len(t, fakeWriter.Entries, numberOfWritesPerLogger*numberOfLoggers)
	for _, entry := range fakeWriter.Entries {
		var parsed map[string]interface{}
		assert.NoError(t, json.Unmarshal([]byte(entry), &parsed))
	}
}
