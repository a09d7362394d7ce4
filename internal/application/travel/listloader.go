package travel

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/teresco/tm-dataproc/internal/domain/traveler"
)

// LoadLists reads every *.list file in dir into a traveler.List, one file
// per user named after its basename. Malformed lines are logged onto the
// owning list rather than aborting the load.
func LoadLists(dir string) ([]*traveler.List, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var lists []*traveler.List
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".list") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".list")
		list, err := loadOneList(filepath.Join(dir, entry.Name()), name)
		if err != nil {
			continue
		}
		lists = append(lists, list)
	}
	return lists, nil
}

func loadOneList(path, name string) (*traveler.List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	list := traveler.NewList(name)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entry, err := traveler.ParseEntry(line)
		if err != nil {
			list.Logf("%v", err)
			continue
		}
		list.Entries = append(list.Entries, entry)
	}
	return list, scanner.Err()
}
