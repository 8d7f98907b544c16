package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	SceneTypeBuiltin = "builtin"
	SceneTypeFile    = "file"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Name passed on the command line or to the render endpoint
	Name        string // Display name
	Description string // Optional description
	Type        string // SceneTypeBuiltin or SceneTypeFile
	FilePath    string // Path to the scene file (file type only)
}

// ListSceneFiles scans dir for YAML scene descriptions.
// A missing directory is not an error.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		info, err := ParseSceneFileMetadata(filePath)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseSceneFileMetadata extracts metadata from the leading comment block of a scene file:
//
//	# Scene: Glossy Cross
//	# Description: five balls and a light
func ParseSceneFileMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:       nameWithoutExt,
		Name:     nameWithoutExt,
		Type:     SceneTypeFile,
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return info, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if value, ok := strings.CutPrefix(content, "Scene:"); ok {
			info.Name = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(content, "Description:"); ok {
			info.Description = strings.TrimSpace(value)
		}
	}

	return info, scanner.Err()
}

// ListAllScenes returns the built-in scenes followed by scene files found in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, err
	}
	return append(ListBuiltinScenes(), files...), nil
}
