package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# EmbedScope configuration
version: "1.0"

data:
  # CSV with columns id,url,title,text followed by numeric dimensions
  path: ""
  # Columns whose name starts with this prefix are plotted dimensions
  dimension_prefix: "d"
  # Reload the CSV whenever it changes on disk
  watch: false

plot:
  # Plot square in screen units; the terminal maps cells onto it
  left: 100
  top: 100
  size: 600
  # Pointer tolerance when hovering points
  hit_radius: 6
  point_size: 5

hotspots:
  # Screen distance below which points are grouped
  threshold: 40
  threshold_min: 20
  threshold_max: 80
  threshold_step: 5
  # Smallest group reported as a hotspot
  min_cluster_size: 10
  # Fraction of each axis added around a hotspot when zooming in
  zoom_padding: 0.1

ui:
  theme: "default" # default|high-contrast|minimal
  cell_width: 8
  cell_height: 16
  # Lines of point text shown in the grid
  grid_text_lines: 4

server:
  address: ":8080"

output:
  default_format: "text" # text|json|csv|markdown|svg
  color_mode: "auto"     # auto|always|never
  verbose: false
  # Explorer log destination; empty drops log lines
  log_file: ""
`
}

// MinimalSampleConfig returns a configuration with only essential settings
func MinimalSampleConfig() string {
	return `version: "1.0"
data:
  path: ""
hotspots:
  threshold: 40
  min_cluster_size: 10
`
}
